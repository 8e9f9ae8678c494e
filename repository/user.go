package repository

import (
	"context"
	"errors"
	"time"

	"event_ticketing/database"
	"event_ticketing/model"

	"gorm.io/gorm"
)

type UserRepository struct{}

func (UserRepository) Create(ctx context.Context, user *model.User) error {
	return database.DB.WithContext(ctx).Create(user).Error
}

func (UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := database.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := database.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (UserRepository) UpdatePassword(ctx context.Context, id uint, hash string) error {
	return database.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("password", hash).Error
}

type ResetTokenRepository struct{}

func (ResetTokenRepository) Create(ctx context.Context, token *model.PasswordResetToken) error {
	return database.DB.WithContext(ctx).Create(token).Error
}

func (ResetTokenRepository) FindValid(ctx context.Context, token string, now time.Time) (*model.PasswordResetToken, error) {
	var resetToken model.PasswordResetToken
	err := database.DB.WithContext(ctx).
		Where("token = ? AND expires_at > ?", token, now).
		First(&resetToken).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &resetToken, nil
}

func (ResetTokenRepository) Delete(ctx context.Context, id uint) error {
	return database.DB.WithContext(ctx).Delete(&model.PasswordResetToken{}, id).Error
}
