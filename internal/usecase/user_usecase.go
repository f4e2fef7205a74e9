package usecase

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/city-tourism-backend/internal/domain"
	"github.com/city-tourism-backend/internal/domain/repository"
	"github.com/city-tourism-backend/internal/pkg/errors"
	"github.com/city-tourism-backend/internal/usecase/dto"
)

type UserUseCase struct {
	userRepo repository.UserRepository
	typeRepo repository.TypeRepository
	logger   *zap.Logger
}

func NewUserUseCase(userRepo repository.UserRepository, typeRepo repository.TypeRepository, logger *zap.Logger) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		typeRepo: typeRepo,
		logger:   logger,
	}
}

func (uc *UserUseCase) Create(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	existing, err := uc.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); !ok || appErr.Code != errors.CodeNotFound {
			return nil, err
		}
	}
	if existing != nil {
		return nil, errors.ErrUserExists.WithMessage("Username %q is already taken", req.Username)
	}

	byEmail, err := uc.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); !ok || appErr.Code != errors.CodeNotFound {
			return nil, err
		}
	}
	if byEmail != nil {
		return nil, errors.ErrUserExists.WithMessage("Email %q is already registered", req.Email)
	}

	if req.TypeID != nil {
		if _, err := uc.typeRepo.GetByID(ctx, *req.TypeID); err != nil {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.ErrInternalServer
	}

	roles := make([]domain.UserRole, 0, len(req.Roles))
	for _, r := range req.Roles {
		roles = append(roles, domain.UserRole(r))
	}

	user := &domain.User{
		Name:     req.Name,
		Lastname: req.Lastname,
		Username: req.Username,
		Password: string(hash),
		Email:    req.Email,
		Roles:    roles,
		TypeID:   req.TypeID,
	}

	created, err := uc.userRepo.Create(ctx, user)
	if err != nil {
		uc.logger.Error("Failed to create user", zap.String("username", req.Username), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("User created", zap.Int64("id", created.ID), zap.String("username", created.Username))
	return created, nil
}

func (uc *UserUseCase) FindAll(ctx context.Context) ([]*domain.User, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, errors.ErrNoContent
	}
	return users, nil
}

func (uc *UserUseCase) FindOne(ctx context.Context, id int64) (*domain.User, error) {
	if id <= 0 {
		return nil, errors.ErrInvalidID
	}
	return uc.userRepo.GetByID(ctx, id)
}

func (uc *UserUseCase) Update(ctx context.Context, id int64, req dto.UpdateUserRequest) (*domain.User, error) {
	user, err := uc.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil && *req.Username != user.Username {
		existing, err := uc.userRepo.GetByUsername(ctx, *req.Username)
		if err != nil {
			if appErr, ok := err.(*errors.AppError); !ok || appErr.Code != errors.CodeNotFound {
				return nil, err
			}
		}
		if existing != nil && existing.ID != user.ID {
			return nil, errors.ErrUserExists.WithMessage("Username %q is already taken", *req.Username)
		}
		user.Username = *req.Username
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Lastname != nil {
		user.Lastname = *req.Lastname
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Roles != nil {
		roles := make([]domain.UserRole, 0, len(req.Roles))
		for _, r := range req.Roles {
			roles = append(roles, domain.UserRole(r))
		}
		user.Roles = roles
	}
	if req.TypeID != nil {
		if _, err := uc.typeRepo.GetByID(ctx, *req.TypeID); err != nil {
			return nil, err
		}
		user.TypeID = req.TypeID
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		uc.logger.Error("Failed to update user", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	return user, nil
}

func (uc *UserUseCase) Remove(ctx context.Context, id int64) error {
	if id <= 0 {
		return errors.ErrInvalidID
	}

	affected, err := uc.userRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.ErrUserNotFound
	}

	uc.logger.Info("User deleted", zap.Int64("id", id))
	return nil
}
