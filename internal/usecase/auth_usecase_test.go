package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/city-tourism-backend/internal/config"
	"github.com/city-tourism-backend/internal/domain"
	"github.com/city-tourism-backend/internal/pkg/errors"
	"github.com/city-tourism-backend/internal/pkg/token"
	"github.com/city-tourism-backend/internal/usecase"
	"github.com/city-tourism-backend/internal/usecase/dto"
)

func newAuthFixture(t *testing.T) (*usecase.AuthUseCase, *MockUserRepository, *MockNotificationRepository, *MockMailer, *token.Manager) {
	t.Helper()

	tokens, err := token.NewManager(&config.JWTConfig{
		Secret:     "test-secret",
		AccessTTL:  30 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	})
	require.NoError(t, err)

	userRepo := &MockUserRepository{}
	notificationRepo := &MockNotificationRepository{}
	mailer := &MockMailer{}

	uc := usecase.NewAuthUseCase(userRepo, notificationRepo, tokens, mailer, zap.NewNop())
	return uc, userRepo, notificationRepo, mailer, tokens
}

func testUser(t *testing.T, password string) *domain.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return &domain.User{
		ID:       1,
		Name:     "Maria",
		Lastname: "Puig",
		Username: "maria",
		Password: string(hash),
		Email:    "maria@example.com",
		Roles:    []domain.UserRole{domain.RoleUser},
	}
}

func TestAuthUseCase_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials return both tokens and persist the refresh hash", func(t *testing.T) {
		uc, userRepo, _, _, tokens := newAuthFixture(t)
		user := testUser(t, "secret123")
		userRepo.On("GetByUsername", ctx, "maria").Return(user, nil)

		var storedHash string
		userRepo.On("UpdateRefreshToken", ctx, int64(1), mock.AnythingOfType("*string")).
			Run(func(args mock.Arguments) {
				storedHash = *args.Get(2).(*string)
			}).Return(nil)

		pair, err := uc.Login(ctx, dto.LoginRequest{Username: "maria", Password: "secret123"})
		require.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)

		// Access token carries the identity claims.
		claims, err := tokens.ValidateToken(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, int64(1), claims.UserID)
		assert.Equal(t, []string{"USER"}, claims.Roles)

		// The stored hash verifies against the returned refresh token.
		refresh := pair.RefreshToken
		tail := refresh
		if len(tail) > 72 {
			tail = tail[len(tail)-72:]
		}
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(tail)))
	})

	t.Run("wrong password is bad credentials", func(t *testing.T) {
		uc, userRepo, _, _, _ := newAuthFixture(t)
		userRepo.On("GetByUsername", ctx, "maria").Return(testUser(t, "secret123"), nil)

		_, err := uc.Login(ctx, dto.LoginRequest{Username: "maria", Password: "nope"})
		assert.ErrorIs(t, err, errors.ErrBadCredentials)
	})

	t.Run("unknown username is bad credentials, not a 404", func(t *testing.T) {
		uc, userRepo, _, _, _ := newAuthFixture(t)
		userRepo.On("GetByUsername", ctx, "ghost").Return(nil, errors.ErrUserNotFound)

		_, err := uc.Login(ctx, dto.LoginRequest{Username: "ghost", Password: "x"})
		assert.ErrorIs(t, err, errors.ErrBadCredentials)
	})
}

func TestAuthUseCase_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("matching token issues a new access token only", func(t *testing.T) {
		uc, userRepo, _, _, _ := newAuthFixture(t)
		user := testUser(t, "secret123")
		userRepo.On("GetByUsername", ctx, "maria").Return(user, nil)

		var storedHash string
		userRepo.On("UpdateRefreshToken", ctx, int64(1), mock.AnythingOfType("*string")).
			Run(func(args mock.Arguments) {
				storedHash = *args.Get(2).(*string)
			}).Return(nil)

		pair, err := uc.Login(ctx, dto.LoginRequest{Username: "maria", Password: "secret123"})
		require.NoError(t, err)

		user.RefreshToken = &storedHash
		userRepo.On("GetByID", ctx, int64(1)).Return(user, nil)

		refreshed, err := uc.Refresh(ctx, dto.RefreshRequest{RefreshToken: pair.RefreshToken})
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)
		assert.Empty(t, refreshed.RefreshToken)
	})

	t.Run("token that does not match the stored hash is rejected", func(t *testing.T) {
		uc, userRepo, _, _, tokens := newAuthFixture(t)
		user := testUser(t, "secret123")
		other, err := bcrypt.GenerateFromPassword([]byte("different-session"), bcrypt.MinCost)
		require.NoError(t, err)
		otherHash := string(other)
		user.RefreshToken = &otherHash
		userRepo.On("GetByID", ctx, int64(1)).Return(user, nil)

		refreshToken, err := tokens.GenerateRefreshToken(1, "maria", []string{"USER"})
		require.NoError(t, err)

		_, err = uc.Refresh(ctx, dto.RefreshRequest{RefreshToken: refreshToken})
		assert.ErrorIs(t, err, errors.ErrInvalidRefreshToken)
	})

	t.Run("logged-out user cannot refresh", func(t *testing.T) {
		uc, userRepo, _, _, tokens := newAuthFixture(t)
		user := testUser(t, "secret123")
		userRepo.On("GetByID", ctx, int64(1)).Return(user, nil)

		refreshToken, err := tokens.GenerateRefreshToken(1, "maria", []string{"USER"})
		require.NoError(t, err)

		_, err = uc.Refresh(ctx, dto.RefreshRequest{RefreshToken: refreshToken})
		assert.ErrorIs(t, err, errors.ErrInvalidRefreshToken)
	})

	t.Run("garbage token is rejected before any lookup", func(t *testing.T) {
		uc, userRepo, _, _, _ := newAuthFixture(t)

		_, err := uc.Refresh(ctx, dto.RefreshRequest{RefreshToken: "not-a-jwt"})
		assert.ErrorIs(t, err, errors.ErrInvalidRefreshToken)
		userRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

func TestAuthUseCase_Logout(t *testing.T) {
	ctx := context.Background()

	uc, userRepo, _, _, _ := newAuthFixture(t)
	userRepo.On("UpdateRefreshToken", ctx, int64(1), (*string)(nil)).Return(nil)

	require.NoError(t, uc.Logout(ctx, 1))
	userRepo.AssertCalled(t, "UpdateRefreshToken", ctx, int64(1), (*string)(nil))
}

func TestAuthUseCase_ForgotPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("generates a password, persists its hash and emails it", func(t *testing.T) {
		uc, userRepo, notificationRepo, mailer, _ := newAuthFixture(t)
		user := testUser(t, "old-password")
		userRepo.On("GetByEmail", ctx, "maria@example.com").Return(user, nil)

		var storedHash string
		userRepo.On("UpdatePassword", ctx, int64(1), mock.AnythingOfType("string")).
			Run(func(args mock.Arguments) {
				storedHash = args.String(2)
			}).Return(nil)
		userRepo.On("UpdateResetToken", ctx, int64(1), mock.AnythingOfType("*string")).Return(nil)
		userRepo.On("UpdateRefreshToken", ctx, int64(1), (*string)(nil)).Return(nil)

		var mailedPassword string
		mailer.On("Send", ctx, "maria@example.com", "forgot-password", mock.Anything, mock.AnythingOfType("string")).
			Run(func(args mock.Arguments) {
				data := args.Get(3).(map[string]interface{})
				mailedPassword = data["password"].(string)
			}).Return(nil)
		notificationRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).
			Return(&domain.Notification{ID: 1}, nil)

		require.NoError(t, uc.ForgotPassword(ctx, dto.ForgotPasswordRequest{Email: "maria@example.com"}))

		require.Len(t, mailedPassword, 8)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(mailedPassword)))
	})

	t.Run("stores a reset-token hash that verifies against the emailed token", func(t *testing.T) {
		uc, userRepo, notificationRepo, mailer, _ := newAuthFixture(t)
		user := testUser(t, "old-password")
		userRepo.On("GetByEmail", ctx, "maria@example.com").Return(user, nil)
		userRepo.On("UpdatePassword", ctx, int64(1), mock.AnythingOfType("string")).Return(nil)
		userRepo.On("UpdateRefreshToken", ctx, int64(1), (*string)(nil)).Return(nil)

		var storedTokenHash *string
		userRepo.On("UpdateResetToken", ctx, int64(1), mock.AnythingOfType("*string")).
			Run(func(args mock.Arguments) {
				storedTokenHash = args.Get(2).(*string)
			}).Return(nil)

		var mailedToken string
		mailer.On("Send", ctx, "maria@example.com", "forgot-password", mock.Anything, mock.AnythingOfType("string")).
			Run(func(args mock.Arguments) {
				data := args.Get(3).(map[string]interface{})
				mailedToken = data["resetToken"].(string)
			}).Return(nil)
		notificationRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).
			Return(&domain.Notification{ID: 1}, nil)

		require.NoError(t, uc.ForgotPassword(ctx, dto.ForgotPasswordRequest{Email: "maria@example.com"}))

		require.NotNil(t, storedTokenHash)
		require.NotEmpty(t, mailedToken)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*storedTokenHash), []byte(mailedToken)))
	})

	t.Run("the emailed token is accepted by the reset flow", func(t *testing.T) {
		uc, userRepo, notificationRepo, mailer, _ := newAuthFixture(t)
		user := testUser(t, "old-password")
		userRepo.On("GetByEmail", ctx, "maria@example.com").Return(user, nil)
		userRepo.On("UpdatePassword", ctx, int64(1), mock.AnythingOfType("string")).Return(nil)
		userRepo.On("UpdateRefreshToken", ctx, int64(1), (*string)(nil)).Return(nil)
		userRepo.On("UpdateResetToken", ctx, int64(1), mock.AnythingOfType("*string")).
			Run(func(args mock.Arguments) {
				// Reflect the write back onto the user, as a reload would.
				user.ResetToken = args.Get(2).(*string)
			}).Return(nil)

		var mailedToken string
		mailer.On("Send", ctx, "maria@example.com", "forgot-password", mock.Anything, mock.AnythingOfType("string")).
			Run(func(args mock.Arguments) {
				data := args.Get(3).(map[string]interface{})
				mailedToken = data["resetToken"].(string)
			}).Return(nil)
		notificationRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).
			Return(&domain.Notification{ID: 1}, nil)

		require.NoError(t, uc.ForgotPassword(ctx, dto.ForgotPasswordRequest{Email: "maria@example.com"}))
		require.NotNil(t, user.ResetToken)

		userRepo.On("UpdateResetToken", ctx, int64(1), (*string)(nil)).Return(nil)

		err := uc.ResetPassword(ctx, dto.ResetPasswordRequest{
			Email: "maria@example.com", Token: mailedToken, NewPassword: "my-own-password",
		})
		require.NoError(t, err)
		userRepo.AssertCalled(t, "UpdateResetToken", ctx, int64(1), (*string)(nil))
	})

	t.Run("unknown email is silently accepted", func(t *testing.T) {
		uc, userRepo, _, mailer, _ := newAuthFixture(t)
		userRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, errors.ErrUserNotFound)

		require.NoError(t, uc.ForgotPassword(ctx, dto.ForgotPasswordRequest{Email: "ghost@example.com"}))
		mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAuthUseCase_ResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("valid token replaces the password and clears both token columns", func(t *testing.T) {
		uc, userRepo, _, _, _ := newAuthFixture(t)
		user := testUser(t, "old-password")

		resetHash, err := bcrypt.GenerateFromPassword([]byte("reset-token-value"), bcrypt.MinCost)
		require.NoError(t, err)
		hashStr := string(resetHash)
		user.ResetToken = &hashStr

		userRepo.On("GetByEmail", ctx, "maria@example.com").Return(user, nil)
		userRepo.On("UpdatePassword", ctx, int64(1), mock.AnythingOfType("string")).Return(nil)
		userRepo.On("UpdateResetToken", ctx, int64(1), (*string)(nil)).Return(nil)
		userRepo.On("UpdateRefreshToken", ctx, int64(1), (*string)(nil)).Return(nil)

		err = uc.ResetPassword(ctx, dto.ResetPasswordRequest{
			Email: "maria@example.com", Token: "reset-token-value", NewPassword: "brand-new-pass",
		})
		require.NoError(t, err)
		userRepo.AssertCalled(t, "UpdateResetToken", ctx, int64(1), (*string)(nil))
		userRepo.AssertCalled(t, "UpdateRefreshToken", ctx, int64(1), (*string)(nil))
	})

	t.Run("mismatched token is rejected", func(t *testing.T) {
		uc, userRepo, _, _, _ := newAuthFixture(t)
		user := testUser(t, "old-password")

		resetHash, err := bcrypt.GenerateFromPassword([]byte("the-real-token"), bcrypt.MinCost)
		require.NoError(t, err)
		hashStr := string(resetHash)
		user.ResetToken = &hashStr
		userRepo.On("GetByEmail", ctx, "maria@example.com").Return(user, nil)

		err = uc.ResetPassword(ctx, dto.ResetPasswordRequest{
			Email: "maria@example.com", Token: "wrong", NewPassword: "brand-new-pass",
		})
		assert.ErrorIs(t, err, errors.ErrInvalidResetToken)
		userRepo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("user without a pending reset is rejected", func(t *testing.T) {
		uc, userRepo, _, _, _ := newAuthFixture(t)
		userRepo.On("GetByEmail", ctx, "maria@example.com").Return(testUser(t, "old-password"), nil)

		err := uc.ResetPassword(ctx, dto.ResetPasswordRequest{
			Email: "maria@example.com", Token: "anything", NewPassword: "brand-new-pass",
		})
		assert.ErrorIs(t, err, errors.ErrInvalidResetToken)
	})
}
