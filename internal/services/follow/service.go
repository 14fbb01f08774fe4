// Package follow maintains the directed follow graph and the
// followers_count aggregate.
package follow

import (
	"errors"
	"log"

	"github.com/uduakgabriel-netizen/disbod/internal/models"
	"github.com/uduakgabriel-netizen/disbod/internal/repositories"
	"github.com/uduakgabriel-netizen/disbod/internal/services/notification"
)

var (
	ErrSelfFollow       = errors.New("you cannot follow yourself")
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrNotFollowing     = errors.New("you are not following this user")
	ErrUserNotFound     = errors.New("user not found")
)

type Service interface {
	Follow(followerID, followingID uint) (*models.User, error)
	Unfollow(followerID, followingID uint) (*models.User, error)
	Followers(userID uint, limit, offset int) ([]models.User, int64, error)
	Following(userID uint, limit, offset int) ([]models.User, int64, error)
}

type service struct {
	follows  repositories.FollowRepository
	users    repositories.UserRepository
	notifier notification.Service
}

func NewService(follows repositories.FollowRepository, users repositories.UserRepository, notifier notification.Service) Service {
	return &service{
		follows:  follows,
		users:    users,
		notifier: notifier,
	}
}

// Follow inserts a follow edge and recounts the target's followers.
// Duplicate follows are rejected with a descriptive error and leave the
// graph unchanged.
func (s *service) Follow(followerID, followingID uint) (*models.User, error) {
	if followerID == followingID {
		return nil, ErrSelfFollow
	}

	follower, err := s.users.GetByID(followerID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	target, err := s.users.GetByID(followingID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	exists, err := s.follows.Exists(followerID, followingID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyFollowing
	}

	err = s.follows.Create(&models.Follow{FollowerID: followerID, FollowingID: followingID})
	if err != nil {
		// A concurrent request may have inserted the same pair between
		// the existence check and the insert; the unique index wins.
		if errors.Is(err, repositories.ErrDuplicateRecord) {
			return nil, ErrAlreadyFollowing
		}
		return nil, err
	}

	if err := s.recountFollowers(target); err != nil {
		return nil, err
	}

	if err := s.notifier.NotifyFollow(follower, target); err != nil {
		log.Printf("follow notification for user %d failed: %v", target.ID, err)
	}

	return target, nil
}

// Unfollow removes a follow edge and recounts the target's followers.
func (s *service) Unfollow(followerID, followingID uint) (*models.User, error) {
	target, err := s.users.GetByID(followingID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	removed, err := s.follows.Delete(followerID, followingID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, ErrNotFollowing
	}

	if err := s.recountFollowers(target); err != nil {
		return nil, err
	}

	return target, nil
}

// recountFollowers refreshes followers_count from a live count of the
// follow table rather than incrementing, so the aggregate converges
// even when concurrent writes interleave.
func (s *service) recountFollowers(target *models.User) error {
	count, err := s.follows.CountFollowers(target.ID)
	if err != nil {
		return err
	}
	target.FollowersCount = int(count)
	return s.users.Update(target)
}

func (s *service) Followers(userID uint, limit, offset int) ([]models.User, int64, error) {
	if _, err := s.users.GetByID(userID); err != nil {
		return nil, 0, ErrUserNotFound
	}
	return s.follows.ListFollowers(userID, limit, offset)
}

func (s *service) Following(userID uint, limit, offset int) ([]models.User, int64, error) {
	if _, err := s.users.GetByID(userID); err != nil {
		return nil, 0, ErrUserNotFound
	}
	return s.follows.ListFollowing(userID, limit, offset)
}
