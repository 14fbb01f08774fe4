package models

import (
	"time"
)

// Follow is a directed, non-symmetric edge in the follow graph.
// Deleting an edge removes the row outright so the pair index never
// blocks a later re-follow.
type Follow struct {
	ID          uint `gorm:"primarykey"`
	CreatedAt   time.Time
	FollowerID  uint  `gorm:"index:idx_follow_pair,unique;not null"`
	Follower    *User `gorm:"foreignKey:FollowerID"`
	FollowingID uint  `gorm:"index:idx_follow_pair,unique;not null"`
	Following   *User `gorm:"foreignKey:FollowingID"`
}

// Rating is one user's star rating of another, unique per pair.
// Like Follow, deletes are hard so the pair can be rated again.
type Rating struct {
	ID          uint `gorm:"primarykey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	RaterID     uint  `gorm:"index:idx_rating_pair,unique;not null"`
	Rater       *User `gorm:"foreignKey:RaterID"`
	RatedUserID uint  `gorm:"index:idx_rating_pair,unique;not null"`
	RatedUser   *User `gorm:"foreignKey:RatedUserID"`
	Stars       int   `gorm:"not null"`
	Comment     string
}

// FeaturedBusiness is an admin-curated promotion for the explore frontpage.
// Unfeaturing removes the row so the business can be featured again.
type FeaturedBusiness struct {
	ID            uint `gorm:"primarykey"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	BusinessID    uint      `gorm:"uniqueIndex;not null"`
	Business      *Business `gorm:"foreignKey:BusinessID"`
	PromotedUntil *time.Time
	Note          string
}

// IsActive reports whether the promotion still grants ranking priority.
// A nil PromotedUntil means the promotion has no expiry.
func (f *FeaturedBusiness) IsActive() bool {
	return f.PromotedUntil == nil || f.PromotedUntil.After(time.Now())
}

// CreateRatingInput is the rating creation payload.
type CreateRatingInput struct {
	RatedUserID uint   `json:"rated_user_id"`
	Stars       int    `json:"stars"`
	Comment     string `json:"comment"`
}
