package usecase

import (
	"context"
	"crypto/rand"
	"math/big"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/city-tourism-backend/internal/domain"
	"github.com/city-tourism-backend/internal/domain/repository"
	"github.com/city-tourism-backend/internal/pkg/errors"
	"github.com/city-tourism-backend/internal/pkg/token"
	"github.com/city-tourism-backend/internal/usecase/dto"
)

// Mailer is the slice of the SMTP client the auth flows need.
type Mailer interface {
	Send(ctx context.Context, to, templateName string, data map[string]interface{}, subject string) error
}

type AuthUseCase struct {
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	tokens           *token.Manager
	mailer           Mailer
	logger           *zap.Logger
}

func NewAuthUseCase(
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
	tokens *token.Manager,
	mailer Mailer,
	logger *zap.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		tokens:           tokens,
		mailer:           mailer,
		logger:           logger,
	}
}

// ValidateUser checks the credentials without issuing tokens.
func (uc *AuthUseCase) ValidateUser(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok && appErr.Code == errors.CodeNotFound {
			return nil, errors.ErrBadCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, errors.ErrBadCredentials
	}

	return user, nil
}

// Login issues the access/refresh pair and stores the bcrypt hash of
// the refresh token, replacing any previous session.
func (uc *AuthUseCase) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenPair, error) {
	user, err := uc.ValidateUser(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	roles := user.RoleStrings()

	accessToken, err := uc.tokens.GenerateAccessToken(user.ID, user.Username, roles)
	if err != nil {
		uc.logger.Error("Failed to sign access token", zap.Int64("userId", user.ID), zap.Error(err))
		return nil, errors.ErrInternalServer
	}

	refreshToken, err := uc.tokens.GenerateRefreshToken(user.ID, user.Username, roles)
	if err != nil {
		uc.logger.Error("Failed to sign refresh token", zap.Int64("userId", user.ID), zap.Error(err))
		return nil, errors.ErrInternalServer
	}

	// bcrypt caps input at 72 bytes; a JWT is longer, so hash the tail
	// which carries the signature.
	hash, err := bcrypt.GenerateFromPassword(refreshTail(refreshToken), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.ErrInternalServer
	}
	hashStr := string(hash)

	if err := uc.userRepo.UpdateRefreshToken(ctx, user.ID, &hashStr); err != nil {
		return nil, err
	}

	uc.logger.Info("User logged in", zap.String("username", user.Username))
	return &dto.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh validates the presented refresh token against the stored
// hash and issues a fresh access token. The refresh token itself is
// not rotated.
func (uc *AuthUseCase) Refresh(ctx context.Context, req dto.RefreshRequest) (*dto.TokenPair, error) {
	claims, err := uc.tokens.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, errors.ErrInvalidRefreshToken
	}

	user, err := uc.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, errors.ErrInvalidRefreshToken
	}

	if user.RefreshToken == nil {
		return nil, errors.ErrInvalidRefreshToken
	}
	if bcrypt.CompareHashAndPassword([]byte(*user.RefreshToken), refreshTail(req.RefreshToken)) != nil {
		return nil, errors.ErrInvalidRefreshToken
	}

	accessToken, err := uc.tokens.GenerateAccessToken(user.ID, user.Username, user.RoleStrings())
	if err != nil {
		uc.logger.Error("Failed to sign access token", zap.Int64("userId", user.ID), zap.Error(err))
		return nil, errors.ErrInternalServer
	}

	return &dto.TokenPair{AccessToken: accessToken}, nil
}

// Logout drops the stored refresh-token hash, invalidating the session.
func (uc *AuthUseCase) Logout(ctx context.Context, userID int64) error {
	if err := uc.userRepo.UpdateRefreshToken(ctx, userID, nil); err != nil {
		return err
	}

	uc.logger.Info("User logged out", zap.Int64("userId", userID))
	return nil
}

// ForgotPassword generates a new random password plus a one-time
// reset token, stores their hashes and mails both to the user. The
// temporary password lets the user log in right away; the token lets
// them pick their own password via ResetPassword. The response never
// reveals whether the email exists.
func (uc *AuthUseCase) ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) error {
	user, err := uc.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok && appErr.Code == errors.CodeNotFound {
			uc.logger.Info("Password reset requested for unknown email", zap.String("email", req.Email))
			return nil
		}
		return err
	}

	newPassword, err := generatePassword(8)
	if err != nil {
		return errors.ErrInternalServer
	}
	resetToken, err := generatePassword(resetTokenLength)
	if err != nil {
		return errors.ErrInternalServer
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.ErrInternalServer
	}
	tokenHash, err := bcrypt.GenerateFromPassword([]byte(resetToken), bcrypt.DefaultCost)
	if err != nil {
		return errors.ErrInternalServer
	}
	tokenHashStr := string(tokenHash)

	if err := uc.userRepo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}
	if err := uc.userRepo.UpdateResetToken(ctx, user.ID, &tokenHashStr); err != nil {
		return err
	}

	// Сброс пароля закрывает активную сессию.
	if err := uc.userRepo.UpdateRefreshToken(ctx, user.ID, nil); err != nil {
		return err
	}

	if err := uc.mailer.Send(ctx, user.Email, "forgot-password", map[string]interface{}{
		"name":       user.Name,
		"username":   user.Username,
		"password":   newPassword,
		"resetToken": resetToken,
	}, "Your new password"); err != nil {
		uc.logger.Error("Failed to send reset email", zap.String("email", user.Email), zap.Error(err))
		return err
	}

	if _, err := uc.notificationRepo.Create(ctx, &domain.Notification{
		Title:   "Password reset",
		Message: "A new password was issued for " + user.Username,
	}); err != nil {
		uc.logger.Warn("Failed to record reset notification", zap.Error(err))
	}

	return nil
}

// ResetPassword applies a caller-chosen password after verifying the
// emailed reset token against its stored hash.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error {
	user, err := uc.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok && appErr.Code == errors.CodeNotFound {
			return errors.ErrInvalidResetToken
		}
		return err
	}

	if user.ResetToken == nil {
		return errors.ErrInvalidResetToken
	}
	if bcrypt.CompareHashAndPassword([]byte(*user.ResetToken), []byte(req.Token)) != nil {
		return errors.ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.ErrInternalServer
	}

	if err := uc.userRepo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}
	if err := uc.userRepo.UpdateResetToken(ctx, user.ID, nil); err != nil {
		return err
	}
	if err := uc.userRepo.UpdateRefreshToken(ctx, user.ID, nil); err != nil {
		return err
	}

	uc.logger.Info("Password reset completed", zap.Int64("userId", user.ID))
	return nil
}

// refreshTail returns the bcrypt-sized suffix of a JWT.
func refreshTail(jwt string) []byte {
	const max = 72
	if len(jwt) <= max {
		return []byte(jwt)
	}
	return []byte(jwt[len(jwt)-max:])
}

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// resetTokenLength stays under the 72-byte bcrypt input cap.
const resetTokenLength = 32

func generatePassword(length int) (string, error) {
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(passwordAlphabet))))
		if err != nil {
			return "", err
		}
		out[i] = passwordAlphabet[n.Int64()]
	}
	return string(out), nil
}
