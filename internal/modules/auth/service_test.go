package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"backline/internal/domain"
	"backline/internal/pkg/jwt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func testUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return &domain.User{
		ID:           1,
		Email:        "admin@backline.local",
		PasswordHash: string(hash),
		Name:         "Admin",
		Role:         domain.RoleAdmin,
	}
}

func TestService_Login_Success(t *testing.T) {
	users := new(MockUserRepository)
	service := NewService(users, jwt.New("test-secret", time.Hour))

	users.On("GetByEmail", mock.Anything, "admin@backline.local").
		Return(testUser(t, "s3cret"), nil)

	res, err := service.Login(context.Background(), LoginRequest{
		Email:    "admin@backline.local",
		Password: "s3cret",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "admin", res.User.Role)
}

func TestService_Login_WrongPassword(t *testing.T) {
	users := new(MockUserRepository)
	service := NewService(users, jwt.New("test-secret", time.Hour))

	users.On("GetByEmail", mock.Anything, "admin@backline.local").
		Return(testUser(t, "s3cret"), nil)

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "admin@backline.local",
		Password: "wrong",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	users := new(MockUserRepository)
	service := NewService(users, jwt.New("test-secret", time.Hour))

	users.On("GetByEmail", mock.Anything, "nobody@backline.local").
		Return(nil, gorm.ErrRecordNotFound)

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "nobody@backline.local",
		Password: "s3cret",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
