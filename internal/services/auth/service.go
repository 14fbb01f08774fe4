package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/uduakgabriel-netizen/disbod/internal/models"
	"github.com/uduakgabriel-netizen/disbod/internal/repositories"
	"github.com/uduakgabriel-netizen/disbod/internal/utils"
	"github.com/uduakgabriel-netizen/disbod/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// verificationCodeTTL is how long an email verification code stays
// redeemable.
const verificationCodeTTL = 10 * time.Minute

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrInvalidCode        = errors.New("invalid or expired verification code")
)

// TokenBlacklister revokes individual tokens by jti until they expire
// on their own.
type TokenBlacklister interface {
	BlacklistToken(ctx context.Context, jti string, until time.Duration) error
}

type Service interface {
	Register(input *models.CreateUserInput) (*models.User, error)
	VerifyEmail(email, code string) error
	Login(email, password string) (*models.User, string, string, error)
	RefreshTokens(refreshToken string) (string, string, error)
	Logout(ctx context.Context, userID uint, jti string, expiresAt time.Time) error
	ChangePassword(userID uint, oldPassword, newPassword string) error
}

type service struct {
	userRepo  repositories.UserRepository
	blacklist TokenBlacklister
}

func NewService(userRepo repositories.UserRepository, blacklist TokenBlacklister) Service {
	return &service{
		userRepo:  userRepo,
		blacklist: blacklist,
	}
}

func (s *service) Register(input *models.CreateUserInput) (*models.User, error) {
	v := validation.New()
	v.UserRegistration(input)
	if !v.Valid() {
		return nil, errors.New(v.FirstError())
	}

	if existing, _ := s.userRepo.GetByEmail(input.Email); existing != nil {
		return nil, ErrEmailTaken
	}
	if existing, _ := s.userRepo.GetByUsername(input.Username); existing != nil {
		return nil, ErrUsernameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	accountType := input.AccountType
	if accountType == "" {
		accountType = models.AccountTypeNormal
	}

	user := &models.User{
		Username:    input.Username,
		Email:       input.Email,
		Password:    string(hashedPassword),
		AccountType: accountType,
		Role:        "user",
		PhoneNumber: input.PhoneNumber,
		Country:     input.Country,
		Region:      input.Region,
		City:        input.City,
		Status:      "active",
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateRecord) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	code := generateCode()
	if err := s.userRepo.CreateVerificationCode(&models.EmailVerificationCode{
		UserID: user.ID,
		Code:   code,
	}); err != nil {
		return nil, err
	}
	// Mail delivery is handled out of band; the code is logged so local
	// setups can verify without an SMTP server.
	log.Printf("email verification code for user %d: %s", user.ID, code)

	return user, nil
}

func (s *service) VerifyEmail(email, code string) error {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return ErrInvalidCode
	}

	record, err := s.userRepo.LatestUnusedCode(user.ID, code)
	if err != nil || record == nil {
		return ErrInvalidCode
	}
	if time.Since(record.CreatedAt) > verificationCodeTTL {
		return ErrInvalidCode
	}

	if err := s.userRepo.MarkCodeUsed(record.ID); err != nil {
		return err
	}

	user.IsEmailVerified = true
	return s.userRepo.Update(user)
}

func (s *service) Login(email, password string) (*models.User, string, string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		log.Printf("login failed: no user for email %s", email)
		return nil, "", "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		log.Printf("login failed: wrong password for user %d", user.ID)
		return nil, "", "", ErrInvalidCredentials
	}

	if !user.IsEmailVerified {
		return nil, "", "", ErrEmailNotVerified
	}

	accessToken, refreshToken, err := utils.GenerateTokens(s.claimsFor(user))
	if err != nil {
		log.Println("error generating tokens:", err)
		return nil, "", "", errors.New("error generating tokens")
	}

	return user, accessToken, refreshToken, nil
}

func (s *service) RefreshTokens(refreshToken string) (string, string, error) {
	_, claims, err := utils.ParseToken(refreshToken)
	if err != nil {
		return "", "", errors.New("invalid refresh token")
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return "", "", errors.New("user not found")
	}

	if user.TokenVersion != claims.TokenVersion {
		return "", "", errors.New("token version mismatch")
	}

	return utils.GenerateTokens(s.claimsFor(user))
}

// Logout blacklists the presented access token and bumps the token
// version so outstanding refresh tokens stop working too.
func (s *service) Logout(ctx context.Context, userID uint, jti string, expiresAt time.Time) error {
	if s.blacklist != nil && jti != "" {
		if err := s.blacklist.BlacklistToken(ctx, jti, time.Until(expiresAt)); err != nil {
			log.Printf("logout: blacklisting token failed: %v", err)
		}
	}
	return s.userRepo.IncrementTokenVersion(userID)
}

func (s *service) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return errors.New("failed to get user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return errors.New("invalid old password")
	}

	v := validation.New()
	v.Password("password", newPassword)
	if !v.Valid() {
		return errors.New(v.FirstError())
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.New("failed to hash password")
	}

	user.Password = string(hashedPassword)
	user.TokenVersion++ // Invalidate existing tokens

	if err := s.userRepo.Update(user); err != nil {
		return errors.New("failed to update password")
	}
	return nil
}

func (s *service) claimsFor(user *models.User) *models.UserClaims {
	return &models.UserClaims{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		AccountType:  user.AccountType,
		TokenVersion: user.TokenVersion,
		Permissions:  models.GetDefaultPermissions(user.Role, user.AccountType),
	}
}

func generateCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		// rand.Reader failing means the platform entropy source is broken
		return "000000"
	}
	return fmt.Sprintf("%06d", n.Int64())
}
