package utils

import (
	"bytes"
	"fmt"

	"event_ticketing/model"

	"github.com/jung-kurt/gofpdf"
)

// GenerateTicketPDF renders a printable ticket for a completed booking.
// Booking must have Event and User preloaded.
func GenerateTicketPDF(booking *model.Booking) ([]byte, error) {
	if booking.Event == nil || booking.User == nil {
		return nil, fmt.Errorf("booking %d missing event or user", booking.ID)
	}

	qrBytes, err := GenerateQRCode(booking.PublicCode, 512)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	imgOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	imgName := "qr_" + booking.PublicCode
	pdf.RegisterImageOptionsReader(imgName, imgOpts, bytes.NewReader(qrBytes))

	// QR centered at the top, details below.
	qrSize := 90.0
	qrX := (210.0 - qrSize) / 2
	pdf.ImageOptions(imgName, qrX, 20, qrSize, qrSize, false, imgOpts, 0, "")
	pdf.SetY(20 + qrSize + 8)

	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.5)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(170, 10, booking.Event.Title, "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 12)
	rows := [][2]string{
		{"Booking Code", booking.PublicCode},
		{"Name", booking.User.Name},
		{"Date", booking.Event.Date.Format("January 2, 2006")},
		{"Time", booking.Event.Time},
		{"Venue", fmt.Sprintf("%s, %s, %s", booking.Event.Venue.Name, booking.Event.Venue.Address, booking.Event.Venue.City)},
		{"Tickets", fmt.Sprintf("%d", booking.Tickets)},
		{"Total", fmt.Sprintf("$%.2f", booking.TotalAmount)},
	}
	for _, row := range rows {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(40, 8, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 12)
		pdf.MultiCell(130, 8, row[1], "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
