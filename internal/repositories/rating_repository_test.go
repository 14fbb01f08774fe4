package repositories

import (
	"testing"

	"github.com/uduakgabriel-netizen/disbod/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestRatingRepository_RateDeleteRate(t *testing.T) {
	repo := NewRatingRepository(newTestDB(t))

	first := &models.Rating{RaterID: 1, RatedUserID: 2, Stars: 3}
	assert.NoError(t, repo.Create(first))

	assert.NoError(t, repo.Delete(first.ID))

	stars, err := repo.StarsFor(2)
	assert.NoError(t, err)
	assert.Empty(t, stars)

	// The pair can be rated again once the old rating is gone.
	second := &models.Rating{RaterID: 1, RatedUserID: 2, Stars: 5}
	assert.NoError(t, repo.Create(second))

	stars, err = repo.StarsFor(2)
	assert.NoError(t, err)
	assert.Equal(t, []int{5}, stars)
}

func TestRatingRepository_DuplicatePairRejected(t *testing.T) {
	repo := NewRatingRepository(newTestDB(t))

	assert.NoError(t, repo.Create(&models.Rating{RaterID: 1, RatedUserID: 2, Stars: 4}))

	err := repo.Create(&models.Rating{RaterID: 1, RatedUserID: 2, Stars: 1})
	assert.ErrorIs(t, err, ErrDuplicateRecord)
}

func TestRatingRepository_DeleteMissing(t *testing.T) {
	repo := NewRatingRepository(newTestDB(t))
	assert.ErrorIs(t, repo.Delete(99), ErrRatingNotFound)
}

func TestRatingRepository_StarsForCollectsAll(t *testing.T) {
	repo := NewRatingRepository(newTestDB(t))

	assert.NoError(t, repo.Create(&models.Rating{RaterID: 1, RatedUserID: 2, Stars: 5}))
	assert.NoError(t, repo.Create(&models.Rating{RaterID: 3, RatedUserID: 2, Stars: 4}))
	assert.NoError(t, repo.Create(&models.Rating{RaterID: 4, RatedUserID: 2, Stars: 3}))
	assert.NoError(t, repo.Create(&models.Rating{RaterID: 1, RatedUserID: 5, Stars: 1}))

	stars, err := repo.StarsFor(2)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []int{5, 4, 3}, stars)
}
