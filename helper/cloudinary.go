package helper

import (
	"context"
	"log"

	"event_ticketing/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

func newCloudinary() (*cloudinary.Cloudinary, error) {
	return cloudinary.NewFromParams(
		config.Config("CLOUDINARY_CLOUD_NAME"),
		config.Config("CLOUDINARY_API_KEY"),
		config.Config("CLOUDINARY_API_SECRET"),
	)
}

// InitCloudinary verifies the credentials are present at startup so upload
// failures surface early.
func InitCloudinary() {
	if _, err := newCloudinary(); err != nil {
		log.Printf("cloudinary not configured, event image upload disabled: %v", err)
	}
}

// UploadEventImage pushes an image (file reader or remote URL) into the
// events folder and returns its delivery URL.
func UploadEventImage(ctx context.Context, file interface{}, publicID string) (string, error) {
	cld, err := newCloudinary()
	if err != nil {
		return "", err
	}
	resp, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:   "events",
		PublicID: publicID,
	})
	if err != nil {
		return "", err
	}
	return resp.SecureURL, nil
}
