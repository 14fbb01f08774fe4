package explore

import (
	"context"
	"testing"
	"time"

	"github.com/uduakgabriel-netizen/disbod/internal/models"
	"github.com/uduakgabriel-netizen/disbod/internal/repositories"
	"github.com/uduakgabriel-netizen/disbod/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockExploreRepo struct {
	mock.Mock
}

func (m *MockExploreRepo) TrendingProducts(since time.Time, filters repositories.ExploreFilters, limit, offset int) ([]models.Product, int64, error) {
	args := m.Called(since, filters, limit, offset)
	return args.Get(0).([]models.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockExploreRepo) SuggestedCandidates(filters repositories.ExploreFilters) ([]models.Business, error) {
	args := m.Called(filters)
	return args.Get(0).([]models.Business), args.Error(1)
}

func (m *MockExploreRepo) ActiveFeaturedBusinessIDs() (map[uint]bool, error) {
	args := m.Called()
	return args.Get(0).(map[uint]bool), args.Error(1)
}

func (m *MockExploreRepo) TopRatedBusinesses(filters repositories.ExploreFilters, limit, offset int) ([]models.Business, int64, error) {
	args := m.Called(filters, limit, offset)
	return args.Get(0).([]models.Business), args.Get(1).(int64), args.Error(2)
}

func (m *MockExploreRepo) SearchBusinesses(q string, filters repositories.ExploreFilters, sort string) ([]models.Business, error) {
	args := m.Called(q, filters, sort)
	return args.Get(0).([]models.Business), args.Error(1)
}

func (m *MockExploreRepo) SearchProducts(q string, filters repositories.ExploreFilters, sort string, limit, offset int) ([]models.Product, int64, error) {
	args := m.Called(q, filters, sort, limit, offset)
	return args.Get(0).([]models.Product), args.Get(1).(int64), args.Error(2)
}

func TestLookbackDays(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"absent falls back", "", DefaultTrendingDays},
		{"non-numeric falls back", "abc", DefaultTrendingDays},
		{"negative falls back", "-3", DefaultTrendingDays},
		{"zero falls back", "0", DefaultTrendingDays},
		{"valid window honored", "14", 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LookbackDays(tt.raw))
		})
	}
}

func TestSortSuggested(t *testing.T) {
	results := []BusinessResult{
		{ID: 1, FollowersCount: 100, AverageRating: 5.0},
		{ID: 2, FollowersCount: 3, AverageRating: 2.0, IsFeatured: true},
		{ID: 3, FollowersCount: 50, AverageRating: 4.0},
		{ID: 4, FollowersCount: 50, AverageRating: 4.8},
		{ID: 5, FollowersCount: 80, AverageRating: 1.0, IsFeatured: true},
	}

	SortSuggested(results)

	ids := make([]uint, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.ID)
	}
	// Featured first regardless of followers, then followers desc, then
	// rating desc as the tie-break.
	assert.Equal(t, []uint{5, 2, 1, 4, 3}, ids)
}

func TestExploreService_Suggested(t *testing.T) {
	t.Run("caps the surface at the limit", func(t *testing.T) {
		repo := new(MockExploreRepo)

		candidates := make([]models.Business, 0, SuggestedLimit+5)
		for i := 1; i <= SuggestedLimit+5; i++ {
			owner := &models.User{FollowersCount: i}
			owner.ID = uint(100 + i)
			b := models.Business{OwnerID: owner.ID, Owner: owner, Name: "b"}
			b.ID = uint(i)
			candidates = append(candidates, b)
		}
		repo.On("SuggestedCandidates", mock.Anything).Return(candidates, nil)
		repo.On("ActiveFeaturedBusinessIDs").Return(map[uint]bool{}, nil)

		s := NewService(repo, nil)
		got, err := s.Suggested(context.Background(), repositories.ExploreFilters{})

		assert.NoError(t, err)
		assert.Len(t, got, SuggestedLimit)
		// Highest follower counts survive the cap.
		assert.Equal(t, SuggestedLimit+5, got[0].FollowersCount)
	})

	t.Run("active featured businesses lead", func(t *testing.T) {
		repo := new(MockExploreRepo)

		popular := &models.User{FollowersCount: 500, AverageRating: 4.9}
		popular.ID = 10
		niche := &models.User{FollowersCount: 2, AverageRating: 3.0}
		niche.ID = 11

		big := models.Business{OwnerID: 10, Owner: popular}
		big.ID = 1
		promoted := models.Business{OwnerID: 11, Owner: niche}
		promoted.ID = 2

		repo.On("SuggestedCandidates", mock.Anything).Return([]models.Business{big, promoted}, nil)
		repo.On("ActiveFeaturedBusinessIDs").Return(map[uint]bool{2: true}, nil)

		s := NewService(repo, nil)
		got, err := s.Suggested(context.Background(), repositories.ExploreFilters{})

		assert.NoError(t, err)
		assert.Equal(t, uint(2), got[0].ID)
		assert.True(t, got[0].IsFeatured)
		assert.Equal(t, uint(1), got[1].ID)
	})
}

func TestExploreService_Trending(t *testing.T) {
	repo := new(MockExploreRepo)

	p := models.Product{Name: "lamp", CategoryID: 3}
	p.ID = 9
	repo.On("TrendingProducts", mock.Anything, mock.Anything, 12, 0).
		Return([]models.Product{p}, int64(1), nil)

	pagination := utils.Pagination{Page: 1, PageSize: 12}
	s := NewService(repo, nil)
	got, err := s.Trending(context.Background(), "nonsense", repositories.ExploreFilters{}, &pagination)

	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, uint(9), got[0].ID)
	assert.Equal(t, int64(1), pagination.Total)

	// The since argument reflects the default window when the input
	// cannot be parsed.
	since := repo.Calls[0].Arguments.Get(0).(time.Time)
	expected := time.Now().AddDate(0, 0, -DefaultTrendingDays)
	assert.WithinDuration(t, expected, since, time.Minute)
}

func TestExploreService_Search(t *testing.T) {
	t.Run("business branch only", func(t *testing.T) {
		repo := new(MockExploreRepo)
		repo.On("SearchBusinesses", "shoes", mock.Anything, "followers").
			Return([]models.Business{}, nil)
		repo.On("ActiveFeaturedBusinessIDs").Return(map[uint]bool{}, nil)

		pagination := utils.Pagination{Page: 1, PageSize: 12}
		s := NewService(repo, nil)
		result, err := s.Search(context.Background(), SearchParams{Q: "shoes", Type: SearchTypeBusiness, Sort: "followers"}, &pagination)

		assert.NoError(t, err)
		assert.Empty(t, result.Products)
		repo.AssertNotCalled(t, "SearchProducts", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown type searches both branches", func(t *testing.T) {
		repo := new(MockExploreRepo)
		repo.On("SearchBusinesses", "shoes", mock.Anything, "").
			Return([]models.Business{}, nil)
		repo.On("ActiveFeaturedBusinessIDs").Return(map[uint]bool{}, nil)
		repo.On("SearchProducts", "shoes", mock.Anything, "", 12, 0).
			Return([]models.Product{}, int64(0), nil)

		pagination := utils.Pagination{Page: 1, PageSize: 12}
		s := NewService(repo, nil)
		_, err := s.Search(context.Background(), SearchParams{Q: "shoes", Type: "bogus"}, &pagination)

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})
}
