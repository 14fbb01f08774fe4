package rating

import (
	"testing"

	"github.com/uduakgabriel-netizen/disbod/internal/models"
	"github.com/uduakgabriel-netizen/disbod/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRatingRepo struct {
	mock.Mock
}

func (m *MockRatingRepo) Create(rating *models.Rating) error {
	args := m.Called(rating)
	return args.Error(0)
}

func (m *MockRatingRepo) GetByID(id uint) (*models.Rating, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rating), args.Error(1)
}

func (m *MockRatingRepo) Update(rating *models.Rating) error {
	args := m.Called(rating)
	return args.Error(0)
}

func (m *MockRatingRepo) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockRatingRepo) StarsFor(ratedUserID uint) ([]int, error) {
	args := m.Called(ratedUserID)
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockRatingRepo) ListPaginated(ratedUserID uint, limit, offset int) ([]models.Rating, int64, error) {
	args := m.Called(ratedUserID, limit, offset)
	return args.Get(0).([]models.Rating), args.Get(1).(int64), args.Error(2)
}

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

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyFollow(follower, following *models.User) error {
	args := m.Called(follower, following)
	return args.Error(0)
}

func (m *MockNotifier) NotifyMessage(sender *models.User, receiverID uint, content string, messageID uint) error {
	args := m.Called(sender, receiverID, content, messageID)
	return args.Error(0)
}

func (m *MockNotifier) NotifyRating(rater, ratedUser *models.User, stars int, ratingID uint) error {
	args := m.Called(rater, ratedUser, stars, ratingID)
	return args.Error(0)
}

func (m *MockNotifier) NotifyVerification(receiverID uint, businessName string) error {
	args := m.Called(receiverID, businessName)
	return args.Error(0)
}

func (m *MockNotifier) List(receiverID uint, limit, offset int) ([]models.Notification, int64, error) {
	args := m.Called(receiverID, limit, offset)
	return args.Get(0).([]models.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *MockNotifier) MarkRead(id, receiverID uint) error {
	args := m.Called(id, receiverID)
	return args.Error(0)
}

func (m *MockNotifier) Clear(receiverID uint) error {
	args := m.Called(receiverID)
	return args.Error(0)
}

func TestRatingService_Create(t *testing.T) {
	rater := &models.User{Username: "ada"}
	rater.ID = 1

	tests := []struct {
		name      string
		raterID   uint
		input     *models.CreateRatingInput
		setupMock func(*MockRatingRepo, *MockUserRepo, *MockNotifier)
		wantErr   error
		wantAvg   float64
	}{
		{
			name:    "stars below range",
			raterID: 1,
			input:   &models.CreateRatingInput{RatedUserID: 2, Stars: 0},
			wantErr: ErrInvalidStars,
		},
		{
			name:    "stars above range",
			raterID: 1,
			input:   &models.CreateRatingInput{RatedUserID: 2, Stars: 6},
			wantErr: ErrInvalidStars,
		},
		{
			name:    "self rating rejected",
			raterID: 1,
			input:   &models.CreateRatingInput{RatedUserID: 1, Stars: 3},
			wantErr: ErrSelfRating,
		},
		{
			name:    "duplicate rating rejected",
			raterID: 1,
			input:   &models.CreateRatingInput{RatedUserID: 2, Stars: 4},
			setupMock: func(ratings *MockRatingRepo, users *MockUserRepo, notifier *MockNotifier) {
				rated := &models.User{Username: "grace"}
				rated.ID = 2
				users.On("GetByID", uint(1)).Return(rater, nil)
				users.On("GetByID", uint(2)).Return(rated, nil)
				ratings.On("Create", mock.Anything).Return(repositories.ErrDuplicateRecord)
			},
			wantErr: ErrAlreadyRated,
		},
		{
			name:    "successful rating recomputes the average",
			raterID: 1,
			input:   &models.CreateRatingInput{RatedUserID: 2, Stars: 5, Comment: "great seller"},
			setupMock: func(ratings *MockRatingRepo, users *MockUserRepo, notifier *MockNotifier) {
				rated := &models.User{Username: "grace"}
				rated.ID = 2
				users.On("GetByID", uint(1)).Return(rater, nil)
				users.On("GetByID", uint(2)).Return(rated, nil)
				ratings.On("Create", mock.Anything).Return(nil)
				ratings.On("StarsFor", uint(2)).Return([]int{5, 4, 3}, nil)
				users.On("Update", mock.MatchedBy(func(u *models.User) bool {
					return u.ID == 2 && u.AverageRating == 4.0
				})).Return(nil)
				notifier.On("NotifyRating", rater, rated, 5, mock.Anything).Return(nil)
			},
			wantAvg: 4.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ratings := new(MockRatingRepo)
			users := new(MockUserRepo)
			notifier := new(MockNotifier)
			if tt.setupMock != nil {
				tt.setupMock(ratings, users, notifier)
			}

			s := NewService(ratings, users, notifier)
			got, err := s.Create(tt.raterID, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.input.Stars, got.Stars)
			users.AssertExpectations(t)
			ratings.AssertExpectations(t)
		})
	}
}

func TestRatingService_Update(t *testing.T) {
	t.Run("only the rater may update", func(t *testing.T) {
		ratings := new(MockRatingRepo)
		existing := &models.Rating{RaterID: 1, RatedUserID: 2, Stars: 3}
		existing.ID = 7
		ratings.On("GetByID", uint(7)).Return(existing, nil)

		s := NewService(ratings, new(MockUserRepo), new(MockNotifier))
		_, err := s.Update(99, 7, 4, "")
		assert.ErrorIs(t, err, ErrNotRater)
	})

	t.Run("empty comment preserves the old one", func(t *testing.T) {
		ratings := new(MockRatingRepo)
		users := new(MockUserRepo)
		existing := &models.Rating{RaterID: 1, RatedUserID: 2, Stars: 3, Comment: "fine"}
		existing.ID = 7
		rated := &models.User{}
		rated.ID = 2

		ratings.On("GetByID", uint(7)).Return(existing, nil)
		ratings.On("Update", mock.Anything).Return(nil)
		users.On("GetByID", uint(2)).Return(rated, nil)
		ratings.On("StarsFor", uint(2)).Return([]int{5}, nil)
		users.On("Update", mock.Anything).Return(nil)

		s := NewService(ratings, users, new(MockNotifier))
		got, err := s.Update(1, 7, 5, "")

		assert.NoError(t, err)
		assert.Equal(t, 5, got.Stars)
		assert.Equal(t, "fine", got.Comment)
	})
}

func TestMean(t *testing.T) {
	tests := []struct {
		name  string
		stars []int
		want  float64
	}{
		{"empty set means zero", nil, 0},
		{"single value", []int{4}, 4},
		{"exact mean", []int{5, 4, 3}, 4},
		{"fractional mean", []int{5, 4}, 4.5},
		{"all minimum", []int{1, 1, 1}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Mean(tt.stars))
		})
	}
}
