package validation

import (
	"github.com/uduakgabriel-netizen/disbod/internal/models"
)

// UserRegistration validates the registration payload.
func (v *Validator) UserRegistration(input *models.CreateUserInput) {
	v.Required("username", input.Username)
	v.MaxLength("username", input.Username, MaxUsernameLength)
	v.Required("email", input.Email)
	v.Email("email", input.Email)
	v.Password("password", input.Password)
	if input.AccountType != "" {
		v.In("account_type", input.AccountType,
			models.AccountTypeNormal, models.AccountTypeBusiness, models.AccountTypePremium)
	}
}

// RatingStars validates the star value of a rating.
func (v *Validator) RatingStars(stars int) {
	v.Check(stars >= MinRatingStars && stars <= MaxRatingStars,
		"stars", "rating must be between 1 and 5 stars")
}

// BusinessCreate validates the business registration payload.
func (v *Validator) BusinessCreate(input *models.CreateBusinessInput) {
	v.Required("name", input.Name)
	v.MaxLength("name", input.Name, MaxBusinessNameLength)
	v.Required("category", input.Category)
	v.MaxLength("category", input.Category, MaxCategoryLength)
	v.MaxLength("description", input.Description, MaxDescriptionLength)
	if input.Email != "" {
		v.Email("email", input.Email)
	}
}
