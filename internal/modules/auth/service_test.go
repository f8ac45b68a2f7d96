package auth

import (
	"context"
	"testing"

	"hotelease/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, id int64, firstName, lastName, phone string) error {
	args := m.Called(ctx, id, firstName, lastName, phone)
	return args.Error(0)
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

type stubJWT struct{}

func (stubJWT) GenerateToken(userID int64, role string) (string, error) {
	return "test-token", nil
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestRegister_Success(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewService(repo, stubJWT{})

	repo.On("ExistsByEmail", mock.Anything, "new@example.com").Return(false, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "new@example.com" && u.Role == domain.RoleUser && u.PasswordHash != ""
	})).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).ID = 7
	})

	user, token, err := svc.Register(context.Background(), RegisterRequest{
		Email:     "New@Example.com",
		Password:  "secret1",
		FirstName: "Thabo",
	})

	require.NoError(t, err)
	assert.Equal(t, "test-token", token)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, "Thabo", user.FirstName)
	repo.AssertExpectations(t)
}

func TestRegister_FirstNameDefaultsToEmailLocalPart(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewService(repo, stubJWT{})

	repo.On("ExistsByEmail", mock.Anything, "guest@example.com").Return(false, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	user, _, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "guest@example.com",
		Password: "secret1",
	})

	require.NoError(t, err)
	assert.Equal(t, "guest", user.FirstName)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewService(repo, stubJWT{})

	repo.On("ExistsByEmail", mock.Anything, "taken@example.com").Return(true, nil)

	_, _, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "taken@example.com",
		Password: "secret1",
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_Success(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewService(repo, stubJWT{})

	repo.On("GetByEmail", mock.Anything, "u@example.com").Return(&domain.User{
		ID:           3,
		Email:        "u@example.com",
		PasswordHash: hashOf(t, "secret1"),
		Role:         domain.RoleUser,
	}, nil)

	user, token, err := svc.Login(context.Background(), LoginRequest{
		Email:    "u@example.com",
		Password: "secret1",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(3), user.ID)
	assert.Equal(t, "test-token", token)
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewService(repo, stubJWT{})

	repo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

	_, _, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewService(repo, stubJWT{})

	repo.On("GetByEmail", mock.Anything, "u@example.com").Return(&domain.User{
		ID:           3,
		Email:        "u@example.com",
		PasswordHash: hashOf(t, "secret1"),
	}, nil)

	_, _, err := svc.Login(context.Background(), LoginRequest{
		Email:    "u@example.com",
		Password: "not-it",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_OAuthOnlyAccount(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewService(repo, stubJWT{})

	repo.On("GetByEmail", mock.Anything, "oauth@example.com").Return(&domain.User{
		ID:            4,
		Email:         "oauth@example.com",
		OAuthProvider: "google",
		OAuthID:       "g-123",
	}, nil)

	_, _, err := svc.Login(context.Background(), LoginRequest{
		Email:    "oauth@example.com",
		Password: "whatever",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfile_PartialPatch(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewService(repo, stubJWT{})

	repo.On("GetByID", mock.Anything, int64(5)).Return(&domain.User{
		ID:        5,
		FirstName: "Ana",
		LastName:  "Dlamini",
		Phone:     "+27110000000",
	}, nil)
	repo.On("UpdateProfile", mock.Anything, int64(5), "Anathi", "Dlamini", "+27110000000").Return(nil)

	newName := "Anathi"
	user, err := svc.UpdateProfile(context.Background(), 5, UpdateProfileRequest{FirstName: &newName})

	require.NoError(t, err)
	assert.Equal(t, "Anathi", user.FirstName)
	assert.Equal(t, "Dlamini", user.LastName)
	repo.AssertExpectations(t)
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewService(repo, stubJWT{})

	repo.On("GetByID", mock.Anything, int64(5)).Return(&domain.User{
		ID:           5,
		PasswordHash: hashOf(t, "old-pass"),
	}, nil)

	err := svc.ChangePassword(context.Background(), 5, ChangePasswordRequest{
		CurrentPassword: "guess",
		NewPassword:     "new-pass",
	})

	assert.ErrorIs(t, err, ErrWrongPassword)
	repo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}

func TestChangePassword_Success(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewService(repo, stubJWT{})

	repo.On("GetByID", mock.Anything, int64(5)).Return(&domain.User{
		ID:           5,
		PasswordHash: hashOf(t, "old-pass"),
	}, nil)
	repo.On("UpdatePassword", mock.Anything, int64(5), mock.MatchedBy(func(h string) bool {
		return bcrypt.CompareHashAndPassword([]byte(h), []byte("new-pass")) == nil
	})).Return(nil)

	err := svc.ChangePassword(context.Background(), 5, ChangePasswordRequest{
		CurrentPassword: "old-pass",
		NewPassword:     "new-pass",
	})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}
