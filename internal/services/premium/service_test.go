package premium

import (
	"testing"
	"time"

	"github.com/uduakgabriel-netizen/disbod/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
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

type stubTokenizer struct {
	token string
	err   error
}

func (s stubTokenizer) Tokenize(card *CardInput) (string, error) {
	return s.token, s.err
}

func TestValidCardNumber(t *testing.T) {
	tests := []struct {
		name   string
		number string
		want   bool
	}{
		{"stripe test visa", "4242424242424242", true},
		{"stripe test mastercard", "5555555555554444", true},
		{"checksum failure", "4242424242424241", false},
		{"empty", "", false},
		{"non-digit characters", "4242-4242-4242-4242", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidCardNumber(tt.number))
		})
	}
}

func TestValidExpiry(t *testing.T) {
	now := time.Now()
	nextYear := now.AddDate(1, 0, 0)
	lastYear := now.AddDate(-1, 0, 0)

	assert.True(t, ValidExpiry("12", nextYear.Format("2006")))
	assert.True(t, ValidExpiry(now.Format("1"), now.Format("2006")))
	assert.False(t, ValidExpiry("12", lastYear.Format("2006")))
	assert.False(t, ValidExpiry("13", nextYear.Format("2006")))
	assert.False(t, ValidExpiry("0", nextYear.Format("2006")))
	assert.False(t, ValidExpiry("abc", nextYear.Format("2006")))
}

func TestPremiumService_Subscribe(t *testing.T) {
	validCard := func() *CardInput {
		return &CardInput{
			CardNumber:  "4242424242424242",
			ExpiryMonth: "12",
			ExpiryYear:  time.Now().AddDate(1, 0, 0).Format("2006"),
			CVC:         "123",
		}
	}

	t.Run("successful subscription upgrades the account", func(t *testing.T) {
		users := new(MockUserRepo)
		user := &models.User{AccountType: models.AccountTypeBusiness}
		user.ID = 1
		users.On("GetByID", uint(1)).Return(user, nil)
		users.On("Update", mock.MatchedBy(func(u *models.User) bool {
			return u.AccountType == models.AccountTypePremium &&
				u.PrePremiumType == models.AccountTypeBusiness &&
				u.PremiumUntil != nil &&
				time.Until(*u.PremiumUntil) > 29*24*time.Hour
		})).Return(nil)

		s := NewService(users, stubTokenizer{token: "tok_abc123"})
		got, err := s.Subscribe(1, validCard())

		assert.NoError(t, err)
		assert.Equal(t, models.AccountTypePremium, got.AccountType)
		users.AssertExpectations(t)
	})

	t.Run("active subscription cannot be stacked", func(t *testing.T) {
		users := new(MockUserRepo)
		until := time.Now().Add(10 * 24 * time.Hour)
		user := &models.User{AccountType: models.AccountTypePremium, PremiumUntil: &until}
		user.ID = 1
		users.On("GetByID", uint(1)).Return(user, nil)

		s := NewService(users, stubTokenizer{token: "tok_abc123"})
		_, err := s.Subscribe(1, validCard())

		assert.ErrorIs(t, err, ErrAlreadySubscribed)
		users.AssertNotCalled(t, "Update", mock.Anything)
	})

	t.Run("lapsed premium can resubscribe", func(t *testing.T) {
		users := new(MockUserRepo)
		until := time.Now().Add(-time.Hour)
		user := &models.User{AccountType: models.AccountTypePremium, PremiumUntil: &until}
		user.ID = 1
		users.On("GetByID", uint(1)).Return(user, nil)
		users.On("Update", mock.Anything).Return(nil)

		s := NewService(users, stubTokenizer{token: "tok_abc123"})
		_, err := s.Subscribe(1, validCard())

		assert.NoError(t, err)
	})

	t.Run("luhn failure rejected before tokenization", func(t *testing.T) {
		users := new(MockUserRepo)
		user := &models.User{AccountType: models.AccountTypeNormal}
		user.ID = 1
		users.On("GetByID", uint(1)).Return(user, nil)

		card := validCard()
		card.CardNumber = "4242424242424241"

		s := NewService(users, stubTokenizer{token: "tok_abc123"})
		_, err := s.Subscribe(1, card)

		assert.ErrorIs(t, err, ErrInvalidCard)
	})

	t.Run("past expiry rejected", func(t *testing.T) {
		users := new(MockUserRepo)
		user := &models.User{AccountType: models.AccountTypeNormal}
		user.ID = 1
		users.On("GetByID", uint(1)).Return(user, nil)

		card := validCard()
		card.ExpiryYear = "2020"

		s := NewService(users, stubTokenizer{token: "tok_abc123"})
		_, err := s.Subscribe(1, card)

		assert.ErrorIs(t, err, ErrExpiredCard)
	})

	t.Run("test token skips card validation", func(t *testing.T) {
		users := new(MockUserRepo)
		user := &models.User{AccountType: models.AccountTypeNormal}
		user.ID = 1
		users.On("GetByID", uint(1)).Return(user, nil)
		users.On("Update", mock.Anything).Return(nil)

		s := NewService(users, stubTokenizer{token: "tok_visa"})
		_, err := s.Subscribe(1, &CardInput{CardNumber: "tok_visa"})

		assert.NoError(t, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		users := new(MockUserRepo)
		users.On("GetByID", uint(9)).Return(nil, assert.AnError)

		s := NewService(users, stubTokenizer{token: "tok_abc123"})
		_, err := s.Subscribe(9, validCard())

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
