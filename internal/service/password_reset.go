package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/tastemapapp/tastemap-server/internal/auth"
	domainerrors "github.com/tastemapapp/tastemap-server/internal/errors"
	"github.com/tastemapapp/tastemap-server/internal/mail"
	"github.com/tastemapapp/tastemap-server/internal/store"
	"github.com/tastemapapp/tastemap-server/internal/validation"
)

// PasswordResetService issues and consumes password reset tokens.
//
// Token rules: 40 hex chars of crypto/rand entropy, one hour expiry,
// single use, stored hashed. Unknown and expired tokens are
// indistinguishable to callers.
type PasswordResetService struct {
	store     *store.Store
	mailer    mail.Mailer
	validator *validation.Validator
	logger    *slog.Logger

	appName   string
	publicURL string
}

// NewPasswordResetService creates a new password reset service.
// publicURL is the externally reachable base URL used in reset links.
func NewPasswordResetService(
	store *store.Store,
	mailer mail.Mailer,
	validator *validation.Validator,
	logger *slog.Logger,
	appName string,
	publicURL string,
) *PasswordResetService {
	return &PasswordResetService{
		store:     store,
		mailer:    mailer,
		validator: validator,
		logger:    logger,
		appName:   appName,
		publicURL: publicURL,
	}
}

// ForgotRequest starts a password reset.
type ForgotRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetRequest completes a password reset.
type ResetRequest struct {
	Token           string `json:"token" validate:"required"`
	Password        string `json:"password" validate:"required,min=8,max=1024"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// Forgot issues a reset token and emails a reset link.
// The response is identical whether or not the email exists, so callers
// can't probe for registered addresses.
func (s *PasswordResetService) Forgot(ctx context.Context, req ForgotRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("Password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	token, err := auth.GenerateResetToken()
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}

	expiresAt := time.Now().Add(auth.ResetTokenDuration)
	if err := s.store.SetResetToken(ctx, user.ID, auth.HashResetToken(token), expiresAt); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.publicURL, url.QueryEscape(token))
	msg, err := mail.BuildResetMessage(user.Email, mail.ResetEmailData{
		AppName:  s.appName,
		Name:     user.Name,
		ResetURL: resetURL,
	})
	if err != nil {
		return fmt.Errorf("build reset email: %w", err)
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		return err
	}

	s.logger.Info("Password reset email sent", "user_id", user.ID)
	return nil
}

// Reset consumes a token and sets a new password.
// The token is cleared in the same update that stores the new password,
// so it can never be replayed.
func (s *PasswordResetService) Reset(ctx context.Context, req ResetRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	user, err := s.store.GetUserByResetToken(ctx, auth.HashResetToken(req.Token))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return domainerrors.NotFound("reset token is invalid or has expired")
		}
		return fmt.Errorf("lookup reset token: %w", err)
	}

	// Expired tokens look exactly like unknown ones. The expiry must lie
	// strictly in the future; a token at its exact expiry instant is dead.
	if user.ResetExpiresAt == nil || !user.ResetExpiresAt.After(time.Now()) {
		return domainerrors.NotFound("reset token is invalid or has expired")
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = passwordHash
	if err := s.store.ClearResetToken(ctx, user); err != nil {
		return fmt.Errorf("consume reset token: %w", err)
	}

	s.logger.Info("Password reset completed", "user_id", user.ID)
	return nil
}
