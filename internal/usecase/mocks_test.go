package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/city-tourism-backend/internal/domain"
)

// MockTypeRepository is a mock of TypeRepository
type MockTypeRepository struct {
	mock.Mock
}

func (m *MockTypeRepository) Create(ctx context.Context, t *domain.TypeEntity) (*domain.TypeEntity, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TypeEntity), args.Error(1)
}

func (m *MockTypeRepository) GetByID(ctx context.Context, id int64) (*domain.TypeEntity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TypeEntity), args.Error(1)
}

func (m *MockTypeRepository) GetByRole(ctx context.Context, role domain.TypeRole) (*domain.TypeEntity, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TypeEntity), args.Error(1)
}

func (m *MockTypeRepository) List(ctx context.Context) ([]*domain.TypeEntity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TypeEntity), args.Error(1)
}

func (m *MockTypeRepository) Update(ctx context.Context, t *domain.TypeEntity) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTypeRepository) Delete(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockSubtypeRepository is a mock of SubtypeRepository
type MockSubtypeRepository struct {
	mock.Mock
}

func (m *MockSubtypeRepository) Create(ctx context.Context, s *domain.Subtype) (*domain.Subtype, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subtype), args.Error(1)
}

func (m *MockSubtypeRepository) GetByID(ctx context.Context, id int64) (*domain.Subtype, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subtype), args.Error(1)
}

func (m *MockSubtypeRepository) GetByName(ctx context.Context, name string) (*domain.Subtype, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subtype), args.Error(1)
}

func (m *MockSubtypeRepository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Subtype, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Subtype), args.Error(1)
}

func (m *MockSubtypeRepository) List(ctx context.Context, typeID int64, sortField, sortOrder string, limit int) ([]*domain.Subtype, error) {
	args := m.Called(ctx, typeID, sortField, sortOrder, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Subtype), args.Error(1)
}

func (m *MockSubtypeRepository) Update(ctx context.Context, s *domain.Subtype) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSubtypeRepository) Delete(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockFacilityRepository is a mock of FacilityRepository
type MockFacilityRepository struct {
	mock.Mock
}

func (m *MockFacilityRepository) Create(ctx context.Context, f *domain.Facility, subtypeIDs []int64) (*domain.Facility, error) {
	args := m.Called(ctx, f, subtypeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Facility), args.Error(1)
}

func (m *MockFacilityRepository) GetByID(ctx context.Context, id int64) (*domain.Facility, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Facility), args.Error(1)
}

func (m *MockFacilityRepository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Facility, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Facility), args.Error(1)
}

func (m *MockFacilityRepository) ListBySubtype(ctx context.Context, subtypeID int64) ([]*domain.Facility, error) {
	args := m.Called(ctx, subtypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Facility), args.Error(1)
}

func (m *MockFacilityRepository) List(ctx context.Context) ([]*domain.Facility, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Facility), args.Error(1)
}

func (m *MockFacilityRepository) Update(ctx context.Context, f *domain.Facility) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFacilityRepository) Delete(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockCityPointRepository is a mock of CityPointRepository
type MockCityPointRepository struct {
	mock.Mock
}

func (m *MockCityPointRepository) Create(ctx context.Context, p *domain.CityPoint, facilityIDs []int64) (*domain.CityPoint, error) {
	args := m.Called(ctx, p, facilityIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CityPoint), args.Error(1)
}

func (m *MockCityPointRepository) GetByID(ctx context.Context, id int64, mode domain.QueryMode) (*domain.CityPoint, error) {
	args := m.Called(ctx, id, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CityPoint), args.Error(1)
}

func (m *MockCityPointRepository) GetByName(ctx context.Context, name string) (*domain.CityPoint, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CityPoint), args.Error(1)
}

func (m *MockCityPointRepository) List(ctx context.Context, filter domain.CityPointFilter) ([]*domain.CityPoint, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.CityPoint), args.Int(1), args.Error(2)
}

func (m *MockCityPointRepository) Update(ctx context.Context, p *domain.CityPoint, facilityIDs []int64) error {
	args := m.Called(ctx, p, facilityIDs)
	return args.Error(0)
}

func (m *MockCityPointRepository) SoftDelete(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCityPointRepository) Restore(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCityPointRepository) ListImagePaths(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockUserRepository is a mock of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id int64, hashedPassword string) error {
	args := m.Called(ctx, id, hashedPassword)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, id int64, hash *string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateResetToken(ctx context.Context, id int64, hash *string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}

// MockNotificationRepository is a mock of NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *MockNotificationRepository) List(ctx context.Context) ([]*domain.Notification, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Notification), args.Error(1)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) DeleteByPrefix(ctx context.Context, prefix string) error {
	args := m.Called(ctx, prefix)
	return args.Error(0)
}

// MockMailer is a mock of Mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, to, templateName string, data map[string]interface{}, subject string) error {
	args := m.Called(ctx, to, templateName, data, subject)
	return args.Error(0)
}

// MockImageStore is a mock of ImageStore
type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) RemoveByPublicPath(publicPath string) {
	m.Called(publicPath)
}
