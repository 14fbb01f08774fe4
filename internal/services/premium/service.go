package premium

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/uduakgabriel-netizen/disbod/internal/models"
	"github.com/uduakgabriel-netizen/disbod/internal/repositories"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/token"
)

// SubscriptionPeriod is how long one paid subscription lasts.
const SubscriptionPeriod = 30 * 24 * time.Hour

var (
	ErrInvalidCard       = errors.New("invalid card number: failed validation check")
	ErrExpiredCard       = errors.New("card expiry is invalid or in the past")
	ErrUserNotFound      = errors.New("user not found")
	ErrAlreadySubscribed = errors.New("premium subscription already active")
)

// Tokenizer exchanges raw card details for a payment token. The stripe
// implementation is swapped for a stub in tests.
type Tokenizer interface {
	Tokenize(card *CardInput) (string, error)
}

type Service interface {
	Subscribe(userID uint, card *CardInput) (*models.User, error)
}

type service struct {
	userRepo  repositories.UserRepository
	tokenizer Tokenizer
}

func NewService(userRepo repositories.UserRepository, tokenizer Tokenizer) Service {
	if tokenizer == nil {
		tokenizer = stripeTokenizer{}
	}
	return &service{
		userRepo:  userRepo,
		tokenizer: tokenizer,
	}
}

// Subscribe validates and tokenizes the card, then upgrades the account
// to premium for one subscription period. An active subscription cannot
// be stacked.
func (s *service) Subscribe(userID uint, card *CardInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if user.AccountType == models.AccountTypePremium && !user.PremiumExpired() {
		return nil, ErrAlreadySubscribed
	}

	if !strings.HasPrefix(card.CardNumber, "tok_") {
		if !ValidCardNumber(card.CardNumber) {
			return nil, ErrInvalidCard
		}
		if !ValidExpiry(card.ExpiryMonth, card.ExpiryYear) {
			return nil, ErrExpiredCard
		}
	}

	paymentToken, err := s.tokenizer.Tokenize(card)
	if err != nil {
		return nil, err
	}
	log.Printf("premium: payment token %s accepted for user %d", paymentToken, userID)

	until := time.Now().Add(SubscriptionPeriod)
	if user.AccountType != models.AccountTypePremium {
		user.PrePremiumType = user.AccountType
	}
	user.AccountType = models.AccountTypePremium
	user.PremiumUntil = &until
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

type stripeTokenizer struct{}

func (stripeTokenizer) Tokenize(card *CardInput) (string, error) {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	// Stripe test tokens skip tokenization and are used as-is.
	if strings.HasPrefix(card.CardNumber, "tok_") {
		return card.CardNumber, nil
	}

	params := &stripe.TokenParams{
		Card: &stripe.CardParams{
			Number:   &card.CardNumber,
			ExpMonth: &card.ExpiryMonth,
			ExpYear:  &card.ExpiryYear,
			CVC:      &card.CVC,
		},
	}
	stripeToken, err := token.New(params)
	if err != nil {
		log.Printf("stripe tokenization error: %v", err)
		return "", fmt.Errorf("stripe tokenization failed: %v", err)
	}
	return stripeToken.ID, nil
}
