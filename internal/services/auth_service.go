package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"etalase/internal/models"
	"etalase/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// EventPublisher publishes domain events to the message broker. A nil
// publisher disables publication; registration and login must never
// fail because the broker is down.
type EventPublisher interface {
	Publish(event string, payload map[string]interface{}) error
}

// AuthService handles registration, credential checks, and bearer
// token issuance and verification.
type AuthService struct {
	userRepo  repositories.UserRepository
	events    EventPublisher
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService. Tokens are valid for 24 hours.
func NewAuthService(userRepo repositories.UserRepository, events EventPublisher, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		events:    events,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  24 * time.Hour,
	}
}

// RegisterUser stores a new user with a bcrypt-hashed password and
// returns a freshly issued token. The email is lowercased before
// storage so the uniqueness constraint is case-insensitive.
func (s *AuthService) RegisterUser(ctx context.Context, user *models.User) (string, error) {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.FullName = strings.TrimSpace(user.FullName)

	if _, err := s.userRepo.GetByEmail(ctx, user.Email); err == nil {
		return "", ErrEmailTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return "", fmt.Errorf("failed to check existing email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashed)
	user.CreatedAt = time.Now().UTC()
	user.IsActive = true

	if err := s.userRepo.Create(ctx, user); err != nil {
		// The pre-check races with concurrent registrations; the unique
		// index has the final word.
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return "", ErrEmailTaken
		}
		return "", fmt.Errorf("failed to register user: %w", err)
	}

	s.publish("user.registered", map[string]interface{}{
		"userId": user.ID.Hex(),
		"email":  user.Email,
	})

	return s.GenerateToken(user)
}

// LoginUser checks the credentials and returns the user together with a
// new token. Unknown email and wrong password are indistinguishable.
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GenerateToken issues an HS256 JWT carrying the user's identifier and
// email.
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID.Hex(),
		"email":   user.Email,
		"iat":     now.Unix(),
		"exp":     now.Add(s.tokenTTL).Unix(),
	})

	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates a token and re-fetches the user it references.
// Expired tokens, tampered tokens, and tokens for users that no longer
// exist each map to their own sentinel error.
func (s *AuthService) VerifyToken(ctx context.Context, tokenString string) (*models.User, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil, ErrTokenInvalid
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserGone
		}
		return nil, fmt.Errorf("failed to load token subject: %w", err)
	}
	return user, nil
}

func (s *AuthService) publish(event string, payload map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(event, payload); err != nil {
		log.Printf("Failed to publish %s event: %v", event, err)
	}
}
