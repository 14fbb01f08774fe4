package auth

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/uduakgabriel-netizen/disbod/internal/models"
	"github.com/uduakgabriel-netizen/disbod/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepo) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockUserRepo) IncrementTokenVersion(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserRepo) ListPaginated(limit, offset int) ([]models.User, int64, error) {
	args := m.Called(limit, offset)
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepo) CreateVerificationCode(code *models.EmailVerificationCode) error {
	args := m.Called(code)
	return args.Error(0)
}

func (m *MockUserRepo) LatestUnusedCode(userID uint, code string) (*models.EmailVerificationCode, error) {
	args := m.Called(userID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EmailVerificationCode), args.Error(1)
}

func (m *MockUserRepo) MarkCodeUsed(codeID uint) error {
	args := m.Called(codeID)
	return args.Error(0)
}

type MockBlacklist struct {
	mock.Mock
}

func (m *MockBlacklist) BlacklistToken(ctx context.Context, jti string, until time.Duration) error {
	args := m.Called(ctx, jti, until)
	return args.Error(0)
}

func registerInput() *models.CreateUserInput {
	return &models.CreateUserInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "sw0rdfish88",
	}
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func TestAuthService_Register(t *testing.T) {
	t.Run("successful registration issues a verification code", func(t *testing.T) {
		users := new(MockUserRepo)
		users.On("GetByEmail", "alice@example.com").Return(nil, assert.AnError)
		users.On("GetByUsername", "alice").Return(nil, assert.AnError)
		users.On("Create", mock.MatchedBy(func(u *models.User) bool {
			return u.Username == "alice" &&
				u.AccountType == models.AccountTypeNormal &&
				u.Role == "user" &&
				u.Status == "active" &&
				u.Password != "sw0rdfish88"
		})).Return(nil)
		users.On("CreateVerificationCode", mock.MatchedBy(func(c *models.EmailVerificationCode) bool {
			return regexp.MustCompile(`^\d{6}$`).MatchString(c.Code)
		})).Return(nil)

		s := NewService(users, nil)
		user, err := s.Register(registerInput())

		assert.NoError(t, err)
		assert.False(t, user.IsEmailVerified)
		users.AssertExpectations(t)
	})

	t.Run("weak password rejected", func(t *testing.T) {
		users := new(MockUserRepo)

		input := registerInput()
		input.Password = "short"

		s := NewService(users, nil)
		_, err := s.Register(input)

		assert.Error(t, err)
		users.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("existing email rejected", func(t *testing.T) {
		users := new(MockUserRepo)
		users.On("GetByEmail", "alice@example.com").Return(&models.User{}, nil)

		s := NewService(users, nil)
		_, err := s.Register(registerInput())

		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("existing username rejected", func(t *testing.T) {
		users := new(MockUserRepo)
		users.On("GetByEmail", "alice@example.com").Return(nil, assert.AnError)
		users.On("GetByUsername", "alice").Return(&models.User{}, nil)

		s := NewService(users, nil)
		_, err := s.Register(registerInput())

		assert.ErrorIs(t, err, ErrUsernameTaken)
	})
}

func TestAuthService_VerifyEmail(t *testing.T) {
	t.Run("valid code marks the email verified", func(t *testing.T) {
		users := new(MockUserRepo)
		user := &models.User{Email: "alice@example.com"}
		user.ID = 1
		record := &models.EmailVerificationCode{UserID: 1, Code: "123456"}
		record.ID = 7
		record.CreatedAt = time.Now()

		users.On("GetByEmail", "alice@example.com").Return(user, nil)
		users.On("LatestUnusedCode", uint(1), "123456").Return(record, nil)
		users.On("MarkCodeUsed", uint(7)).Return(nil)
		users.On("Update", mock.MatchedBy(func(u *models.User) bool {
			return u.IsEmailVerified
		})).Return(nil)

		s := NewService(users, nil)
		assert.NoError(t, s.VerifyEmail("alice@example.com", "123456"))
		users.AssertExpectations(t)
	})

	t.Run("expired code rejected", func(t *testing.T) {
		users := new(MockUserRepo)
		user := &models.User{Email: "alice@example.com"}
		user.ID = 1
		record := &models.EmailVerificationCode{UserID: 1, Code: "123456"}
		record.CreatedAt = time.Now().Add(-verificationCodeTTL - time.Minute)

		users.On("GetByEmail", "alice@example.com").Return(user, nil)
		users.On("LatestUnusedCode", uint(1), "123456").Return(record, nil)

		s := NewService(users, nil)
		err := s.VerifyEmail("alice@example.com", "123456")

		assert.ErrorIs(t, err, ErrInvalidCode)
		users.AssertNotCalled(t, "MarkCodeUsed", mock.Anything)
	})

	t.Run("wrong code rejected", func(t *testing.T) {
		users := new(MockUserRepo)
		user := &models.User{Email: "alice@example.com"}
		user.ID = 1
		users.On("GetByEmail", "alice@example.com").Return(user, nil)
		users.On("LatestUnusedCode", uint(1), "999999").Return(nil, assert.AnError)

		s := NewService(users, nil)
		err := s.VerifyEmail("alice@example.com", "999999")

		assert.ErrorIs(t, err, ErrInvalidCode)
		users.AssertNotCalled(t, "Update", mock.Anything)
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("successful login returns parseable tokens", func(t *testing.T) {
		users := new(MockUserRepo)
		user := &models.User{
			Email:           "alice@example.com",
			Password:        hashPassword(t, "sw0rdfish88"),
			IsEmailVerified: true,
			Role:            "user",
			AccountType:     models.AccountTypeNormal,
			TokenVersion:    3,
		}
		user.ID = 1
		users.On("GetByEmail", "alice@example.com").Return(user, nil)

		s := NewService(users, nil)
		got, access, refresh, err := s.Login("alice@example.com", "sw0rdfish88")

		assert.NoError(t, err)
		assert.Equal(t, uint(1), got.ID)
		assert.NotEmpty(t, refresh)

		_, claims, err := utils.ParseToken(access)
		assert.NoError(t, err)
		assert.Equal(t, uint(1), claims.UserID)
		assert.Equal(t, 3, claims.TokenVersion)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(MockUserRepo)
		user := &models.User{
			Password:        hashPassword(t, "sw0rdfish88"),
			IsEmailVerified: true,
		}
		users.On("GetByEmail", "alice@example.com").Return(user, nil)

		s := NewService(users, nil)
		_, _, _, err := s.Login("alice@example.com", "wrong")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		users := new(MockUserRepo)
		users.On("GetByEmail", "ghost@example.com").Return(nil, assert.AnError)

		s := NewService(users, nil)
		_, _, _, err := s.Login("ghost@example.com", "sw0rdfish88")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unverified email blocked", func(t *testing.T) {
		users := new(MockUserRepo)
		user := &models.User{Password: hashPassword(t, "sw0rdfish88")}
		users.On("GetByEmail", "alice@example.com").Return(user, nil)

		s := NewService(users, nil)
		_, _, _, err := s.Login("alice@example.com", "sw0rdfish88")

		assert.ErrorIs(t, err, ErrEmailNotVerified)
	})
}

func TestAuthService_RefreshTokens(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	issueRefresh := func(t *testing.T, user *models.User) string {
		t.Helper()
		_, refresh, err := utils.GenerateTokens(&models.UserClaims{
			UserID:       user.ID,
			TokenVersion: user.TokenVersion,
		})
		assert.NoError(t, err)
		return refresh
	}

	t.Run("valid refresh token rotates the pair", func(t *testing.T) {
		users := new(MockUserRepo)
		user := &models.User{TokenVersion: 2}
		user.ID = 1
		users.On("GetByID", uint(1)).Return(user, nil)

		s := NewService(users, nil)
		access, refresh, err := s.RefreshTokens(issueRefresh(t, user))

		assert.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
	})

	t.Run("stale token version rejected", func(t *testing.T) {
		users := new(MockUserRepo)
		stale := &models.User{TokenVersion: 2}
		stale.ID = 1
		token := issueRefresh(t, stale)

		current := &models.User{TokenVersion: 3}
		current.ID = 1
		users.On("GetByID", uint(1)).Return(current, nil)

		s := NewService(users, nil)
		_, _, err := s.RefreshTokens(token)

		assert.Error(t, err)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		s := NewService(new(MockUserRepo), nil)
		_, _, err := s.RefreshTokens("not-a-jwt")
		assert.Error(t, err)
	})
}

func TestAuthService_Logout(t *testing.T) {
	t.Run("blacklists the access token and bumps the version", func(t *testing.T) {
		users := new(MockUserRepo)
		blacklist := new(MockBlacklist)

		blacklist.On("BlacklistToken", mock.Anything, "jti-1", mock.MatchedBy(func(d time.Duration) bool {
			return d > 0
		})).Return(nil)
		users.On("IncrementTokenVersion", uint(1)).Return(nil)

		s := NewService(users, blacklist)
		err := s.Logout(context.Background(), 1, "jti-1", time.Now().Add(15*time.Minute))

		assert.NoError(t, err)
		users.AssertExpectations(t)
		blacklist.AssertExpectations(t)
	})

	t.Run("blacklist failure still revokes refresh tokens", func(t *testing.T) {
		users := new(MockUserRepo)
		blacklist := new(MockBlacklist)

		blacklist.On("BlacklistToken", mock.Anything, "jti-1", mock.Anything).Return(assert.AnError)
		users.On("IncrementTokenVersion", uint(1)).Return(nil)

		s := NewService(users, blacklist)
		err := s.Logout(context.Background(), 1, "jti-1", time.Now().Add(15*time.Minute))

		assert.NoError(t, err)
		users.AssertExpectations(t)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	t.Run("success bumps the token version", func(t *testing.T) {
		users := new(MockUserRepo)
		user := &models.User{Password: hashPassword(t, "0ldpassword"), TokenVersion: 1}
		user.ID = 1
		users.On("GetByID", uint(1)).Return(user, nil)
		users.On("Update", mock.MatchedBy(func(u *models.User) bool {
			return u.TokenVersion == 2 && u.Password != "n3wpassword"
		})).Return(nil)

		s := NewService(users, nil)
		assert.NoError(t, s.ChangePassword(1, "0ldpassword", "n3wpassword"))
		users.AssertExpectations(t)
	})

	t.Run("wrong old password", func(t *testing.T) {
		users := new(MockUserRepo)
		user := &models.User{Password: hashPassword(t, "0ldpassword")}
		user.ID = 1
		users.On("GetByID", uint(1)).Return(user, nil)

		s := NewService(users, nil)
		err := s.ChangePassword(1, "wrong", "n3wpassword")

		assert.Error(t, err)
		users.AssertNotCalled(t, "Update", mock.Anything)
	})

	t.Run("weak new password", func(t *testing.T) {
		users := new(MockUserRepo)
		user := &models.User{Password: hashPassword(t, "0ldpassword")}
		user.ID = 1
		users.On("GetByID", uint(1)).Return(user, nil)

		s := NewService(users, nil)
		err := s.ChangePassword(1, "0ldpassword", "short")

		assert.Error(t, err)
		users.AssertNotCalled(t, "Update", mock.Anything)
	})
}
