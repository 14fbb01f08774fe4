package validation

const (
	// Rating bounds
	MinRatingStars = 1
	MaxRatingStars = 5

	// Password requirements
	MinPasswordLength = 8
	MaxPasswordLength = 72

	// String lengths
	MaxUsernameLength     = 150
	MaxBusinessNameLength = 200
	MaxCategoryLength     = 100
	MaxDescriptionLength  = 500
	MaxMessageLength      = 5000
)
