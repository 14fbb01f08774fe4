// Package rating manages star ratings between users and keeps the
// average_rating aggregate exact by recomputing the full mean on every
// write.
package rating

import (
	"errors"
	"log"

	"github.com/uduakgabriel-netizen/disbod/internal/models"
	"github.com/uduakgabriel-netizen/disbod/internal/repositories"
	"github.com/uduakgabriel-netizen/disbod/internal/services/notification"
	"github.com/uduakgabriel-netizen/disbod/internal/validation"
)

var (
	ErrInvalidStars  = errors.New("rating must be between 1 and 5 stars")
	ErrSelfRating    = errors.New("you cannot rate yourself")
	ErrAlreadyRated  = errors.New("you have already rated this user")
	ErrNotRater      = errors.New("you can only modify your own rating")
	ErrUserNotFound  = errors.New("user not found")
	ErrRatingMissing = errors.New("rating not found")
)

type Service interface {
	Create(raterID uint, input *models.CreateRatingInput) (*models.Rating, error)
	Get(id uint) (*models.Rating, error)
	Update(raterID, ratingID uint, stars int, comment string) (*models.Rating, error)
	Delete(raterID, ratingID uint) error
	List(ratedUserID uint, limit, offset int) ([]models.Rating, int64, error)
}

type service struct {
	ratings  repositories.RatingRepository
	users    repositories.UserRepository
	notifier notification.Service
}

func NewService(ratings repositories.RatingRepository, users repositories.UserRepository, notifier notification.Service) Service {
	return &service{
		ratings:  ratings,
		users:    users,
		notifier: notifier,
	}
}

func (s *service) Create(raterID uint, input *models.CreateRatingInput) (*models.Rating, error) {
	if input.Stars < validation.MinRatingStars || input.Stars > validation.MaxRatingStars {
		return nil, ErrInvalidStars
	}
	if raterID == input.RatedUserID {
		return nil, ErrSelfRating
	}

	rater, err := s.users.GetByID(raterID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	rated, err := s.users.GetByID(input.RatedUserID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	rating := &models.Rating{
		RaterID:     raterID,
		RatedUserID: input.RatedUserID,
		Stars:       input.Stars,
		Comment:     input.Comment,
	}
	if err := s.ratings.Create(rating); err != nil {
		if errors.Is(err, repositories.ErrDuplicateRecord) {
			return nil, ErrAlreadyRated
		}
		return nil, err
	}

	if err := s.recomputeAverage(rated); err != nil {
		return nil, err
	}

	if err := s.notifier.NotifyRating(rater, rated, rating.Stars, rating.ID); err != nil {
		log.Printf("rating notification for user %d failed: %v", rated.ID, err)
	}

	return rating, nil
}

func (s *service) Get(id uint) (*models.Rating, error) {
	rating, err := s.ratings.GetByID(id)
	if err != nil {
		return nil, ErrRatingMissing
	}
	return rating, nil
}

func (s *service) Update(raterID, ratingID uint, stars int, comment string) (*models.Rating, error) {
	if stars < validation.MinRatingStars || stars > validation.MaxRatingStars {
		return nil, ErrInvalidStars
	}

	rating, err := s.ratings.GetByID(ratingID)
	if err != nil {
		return nil, ErrRatingMissing
	}
	if rating.RaterID != raterID {
		return nil, ErrNotRater
	}

	rating.Stars = stars
	if comment != "" {
		rating.Comment = comment
	}
	if err := s.ratings.Update(rating); err != nil {
		return nil, err
	}

	rated, err := s.users.GetByID(rating.RatedUserID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if err := s.recomputeAverage(rated); err != nil {
		return nil, err
	}

	return rating, nil
}

func (s *service) Delete(raterID, ratingID uint) error {
	rating, err := s.ratings.GetByID(ratingID)
	if err != nil {
		return ErrRatingMissing
	}
	if rating.RaterID != raterID {
		return ErrNotRater
	}

	if err := s.ratings.Delete(ratingID); err != nil {
		return err
	}

	rated, err := s.users.GetByID(rating.RatedUserID)
	if err != nil {
		return ErrUserNotFound
	}
	return s.recomputeAverage(rated)
}

func (s *service) List(ratedUserID uint, limit, offset int) ([]models.Rating, int64, error) {
	return s.ratings.ListPaginated(ratedUserID, limit, offset)
}

// recomputeAverage replaces the aggregate with the exact arithmetic
// mean over every rating the user has received. O(n) per write, but
// immune to drift from failed increments.
func (s *service) recomputeAverage(rated *models.User) error {
	stars, err := s.ratings.StarsFor(rated.ID)
	if err != nil {
		return err
	}

	rated.AverageRating = Mean(stars)
	return s.users.Update(rated)
}

// Mean returns the arithmetic mean of the star values, or zero for an
// empty set.
func Mean(stars []int) float64 {
	if len(stars) == 0 {
		return 0
	}
	var sum int
	for _, s := range stars {
		sum += s
	}
	return float64(sum) / float64(len(stars))
}
