package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/city-tourism-backend/internal/domain"
	"github.com/city-tourism-backend/internal/pkg/errors"
	"github.com/city-tourism-backend/internal/usecase"
	"github.com/city-tourism-backend/internal/usecase/dto"
)

func newUserFixture() (*usecase.UserUseCase, *MockUserRepository, *MockTypeRepository) {
	userRepo := &MockUserRepository{}
	typeRepo := &MockTypeRepository{}
	return usecase.NewUserUseCase(userRepo, typeRepo, zap.NewNop()), userRepo, typeRepo
}

func TestUserUseCase_Create(t *testing.T) {
	ctx := context.Background()

	req := dto.CreateUserRequest{
		Name:     "Maria",
		Lastname: "Puig",
		Username: "maria",
		Password: "secret123",
		Email:    "maria@example.com",
		Roles:    []string{"USER"},
	}

	t.Run("stores a bcrypt hash, never the raw password", func(t *testing.T) {
		uc, userRepo, _ := newUserFixture()
		userRepo.On("GetByUsername", ctx, "maria").Return(nil, errors.ErrUserNotFound)
		userRepo.On("GetByEmail", ctx, "maria@example.com").Return(nil, errors.ErrUserNotFound)

		var persisted *domain.User
		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).
			Run(func(args mock.Arguments) {
				persisted = args.Get(1).(*domain.User)
			}).
			Return(&domain.User{ID: 1, Username: "maria"}, nil)

		_, err := uc.Create(ctx, req)
		require.NoError(t, err)
		require.NotNil(t, persisted)
		assert.NotEqual(t, "secret123", persisted.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(persisted.Password), []byte("secret123")))
	})

	t.Run("taken username is rejected", func(t *testing.T) {
		uc, userRepo, _ := newUserFixture()
		userRepo.On("GetByUsername", ctx, "maria").Return(&domain.User{ID: 2, Username: "maria"}, nil)

		_, err := uc.Create(ctx, req)
		require.Error(t, err)
		appErr, ok := err.(*errors.AppError)
		require.True(t, ok)
		assert.Equal(t, 400, appErr.StatusCode)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("registered email is rejected", func(t *testing.T) {
		uc, userRepo, _ := newUserFixture()
		userRepo.On("GetByUsername", ctx, "maria").Return(nil, errors.ErrUserNotFound)
		userRepo.On("GetByEmail", ctx, "maria@example.com").Return(&domain.User{ID: 3}, nil)

		_, err := uc.Create(ctx, req)
		require.Error(t, err)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown type reference is a 404", func(t *testing.T) {
		uc, userRepo, typeRepo := newUserFixture()
		userRepo.On("GetByUsername", ctx, "maria").Return(nil, errors.ErrUserNotFound)
		userRepo.On("GetByEmail", ctx, "maria@example.com").Return(nil, errors.ErrUserNotFound)
		typeRepo.On("GetByID", ctx, int64(9)).Return(nil, errors.ErrTypeNotFound)

		withType := req
		typeID := int64(9)
		withType.TypeID = &typeID

		_, err := uc.Create(ctx, withType)
		assert.ErrorIs(t, err, errors.ErrTypeNotFound)
	})
}

func TestUserUseCase_Remove(t *testing.T) {
	ctx := context.Background()

	uc, userRepo, _ := newUserFixture()
	userRepo.On("Delete", ctx, int64(7)).Return(int64(0), nil)

	err := uc.Remove(ctx, 7)
	assert.ErrorIs(t, err, errors.ErrUserNotFound)
}
