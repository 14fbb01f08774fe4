package repositories

import (
	"testing"
	"time"

	"github.com/uduakgabriel-netizen/disbod/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestBusinessRepository_RefeatureAfterRemove(t *testing.T) {
	db := newTestDB(t)
	repo := NewBusinessRepository(db)

	until := time.Now().Add(24 * time.Hour)
	assert.NoError(t, repo.SetFeatured(7, &until, "launch week"))
	assert.NoError(t, repo.RemoveFeatured(7))

	// The unique business_id index must not remember the removed promotion.
	assert.NoError(t, repo.SetFeatured(7, nil, "second run"))

	var promotions []models.FeaturedBusiness
	assert.NoError(t, db.Find(&promotions).Error)
	assert.Len(t, promotions, 1)
	assert.Equal(t, "second run", promotions[0].Note)
	assert.Nil(t, promotions[0].PromotedUntil)
}

func TestBusinessRepository_SetFeaturedUpdatesExisting(t *testing.T) {
	db := newTestDB(t)
	repo := NewBusinessRepository(db)

	assert.NoError(t, repo.SetFeatured(7, nil, "first"))
	assert.NoError(t, repo.SetFeatured(7, nil, "revised"))

	var promotions []models.FeaturedBusiness
	assert.NoError(t, db.Find(&promotions).Error)
	assert.Len(t, promotions, 1)
	assert.Equal(t, "revised", promotions[0].Note)
}
