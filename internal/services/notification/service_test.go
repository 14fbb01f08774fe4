package notification

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/uduakgabriel-netizen/disbod/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(notification *models.Notification) error {
	args := m.Called(notification)
	return args.Error(0)
}

func (m *MockNotificationRepo) GetForReceiver(id, receiverID uint) (*models.Notification, error) {
	args := m.Called(id, receiverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func (m *MockNotificationRepo) ListForReceiver(receiverID uint, limit, offset int) ([]models.Notification, int64, error) {
	args := m.Called(receiverID, limit, offset)
	return args.Get(0).([]models.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *MockNotificationRepo) MarkRead(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockNotificationRepo) ClearForReceiver(receiverID uint) error {
	args := m.Called(receiverID)
	return args.Error(0)
}

func testUser(id uint, username string) *models.User {
	u := &models.User{Username: username}
	u.ID = id
	return u
}

func TestNotifyFollow(t *testing.T) {
	repo := new(MockNotificationRepo)
	repo.On("Create", mock.MatchedBy(func(n *models.Notification) bool {
		return *n.SenderID == 1 &&
			n.ReceiverID == 2 &&
			n.Type == models.NotificationFollow &&
			n.Message == "alice started following you."
	})).Return(nil)

	s := NewService(repo)
	err := s.NotifyFollow(testUser(1, "alice"), testUser(2, "bob"))

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestNotifyMessage(t *testing.T) {
	t.Run("short content kept whole", func(t *testing.T) {
		repo := new(MockNotificationRepo)
		repo.On("Create", mock.MatchedBy(func(n *models.Notification) bool {
			return n.Message == "New message from alice: hey there" &&
				n.Type == models.NotificationMessage &&
				*n.RelatedObjectID == 77
		})).Return(nil)

		s := NewService(repo)
		err := s.NotifyMessage(testUser(1, "alice"), 2, "hey there", 77)

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("long content truncated to preview", func(t *testing.T) {
		repo := new(MockNotificationRepo)
		repo.On("Create", mock.MatchedBy(func(n *models.Notification) bool {
			return n.Message == "New message from alice: "+strings.Repeat("x", messagePreviewLen)
		})).Return(nil)

		s := NewService(repo)
		err := s.NotifyMessage(testUser(1, "alice"), 2, strings.Repeat("x", 200), 77)

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("multibyte content truncated on rune boundaries", func(t *testing.T) {
		repo := new(MockNotificationRepo)
		repo.On("Create", mock.MatchedBy(func(n *models.Notification) bool {
			return utf8.ValidString(n.Message) &&
				n.Message == "New message from alice: "+strings.Repeat("é", messagePreviewLen)
		})).Return(nil)

		s := NewService(repo)
		err := s.NotifyMessage(testUser(1, "alice"), 2, strings.Repeat("é", 100), 77)

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestNotifyRating(t *testing.T) {
	repo := new(MockNotificationRepo)
	repo.On("Create", mock.MatchedBy(func(n *models.Notification) bool {
		return n.Message == "alice rated you 4 stars." &&
			n.Type == models.NotificationRating &&
			n.ReceiverID == 2
	})).Return(nil)

	s := NewService(repo)
	err := s.NotifyRating(testUser(1, "alice"), testUser(2, "bob"), 4, 9)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestNotifyVerification(t *testing.T) {
	repo := new(MockNotificationRepo)
	repo.On("Create", mock.MatchedBy(func(n *models.Notification) bool {
		return n.SenderID == nil &&
			n.Type == models.NotificationVerification &&
			n.Message == "Acme Supplies has been verified."
	})).Return(nil)

	s := NewService(repo)
	err := s.NotifyVerification(2, "Acme Supplies")

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestMarkRead(t *testing.T) {
	t.Run("owned notification marked", func(t *testing.T) {
		repo := new(MockNotificationRepo)
		n := &models.Notification{ReceiverID: 2}
		n.ID = 5
		repo.On("GetForReceiver", uint(5), uint(2)).Return(n, nil)
		repo.On("MarkRead", uint(5)).Return(nil)

		s := NewService(repo)
		assert.NoError(t, s.MarkRead(5, 2))
		repo.AssertExpectations(t)
	})

	t.Run("another receiver's notification rejected", func(t *testing.T) {
		repo := new(MockNotificationRepo)
		repo.On("GetForReceiver", uint(5), uint(3)).Return(nil, assert.AnError)

		s := NewService(repo)
		err := s.MarkRead(5, 3)

		assert.ErrorIs(t, err, ErrNotificationNotFound)
		repo.AssertNotCalled(t, "MarkRead", mock.Anything)
	})
}
