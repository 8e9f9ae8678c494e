package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"event_ticketing/constants"
	"event_ticketing/model"

	"golang.org/x/crypto/bcrypt"
)

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id uint) (*model.User, error)
	UpdatePassword(ctx context.Context, id uint, hash string) error
}

type ResetTokenStore interface {
	Create(ctx context.Context, token *model.PasswordResetToken) error
	FindValid(ctx context.Context, token string, now time.Time) (*model.PasswordResetToken, error)
	Delete(ctx context.Context, id uint) error
}

// ResetMailer delivers the password-reset link. Best effort, errors are the
// implementation's problem.
type ResetMailer interface {
	SendPasswordReset(email, link string)
}

type AuthService struct {
	users    UserStore
	tokens   ResetTokenStore
	mailer   ResetMailer
	adminKey string
	appURL   string
}

func NewAuthService(users UserStore, tokens ResetTokenStore, mailer ResetMailer, adminKey, appURL string) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		mailer:   mailer,
		adminKey: adminKey,
		appURL:   appURL,
	}
}

func (s *AuthService) Register(ctx context.Context, input model.RegisterInput) (*model.User, error) {
	existing, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrConflict, constants.EMAIL_ALREADY_REGISTERED)
	}

	role := constants.ROLE_USER
	if input.Role == constants.ROLE_ADMIN {
		// An unset ADMIN_REGISTRATION_KEY disables admin self-registration
		// entirely rather than falling back to a built-in default.
		if s.adminKey == "" || input.AdminKey != s.adminKey {
			return nil, fmt.Errorf("%w: %s", ErrForbidden, constants.INVALID_ADMIN_KEY)
		}
		role = constants.ROLE_ADMIN
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), 10)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hash),
		Phone:    input.Phone,
		Role:     role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login deliberately returns the same error for an unknown email and a wrong
// password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnauthorized, constants.INVALID_CREDENTIALS)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnauthorized, constants.INVALID_CREDENTIALS)
	}
	return user, nil
}

func (s *AuthService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, constants.USER_NOT_FOUND)
	}
	return user, nil
}

// ForgotPassword issues a one-hour reset token and mails the link. Unknown
// emails succeed silently so the endpoint cannot be used to probe accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	tokenBytes := make([]byte, 16)
	if _, err := rand.Read(tokenBytes); err != nil {
		return err
	}
	token := hex.EncodeToString(tokenBytes)

	resetToken := &model.PasswordResetToken{
		UserId:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(1 * time.Hour),
	}
	if err := s.tokens.Create(ctx, resetToken); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", s.appURL, token)
	s.mailer.SendPasswordReset(user.Email, link)
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	resetToken, err := s.tokens.FindValid(ctx, token, time.Now())
	if err != nil {
		return err
	}
	if resetToken == nil {
		return fmt.Errorf("%w: reset token is invalid or expired", ErrInvalid)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, resetToken.UserId, string(hash)); err != nil {
		return err
	}
	return s.tokens.Delete(ctx, resetToken.ID)
}
