package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/auth"
	"reviewhub/internal/config"
	"reviewhub/internal/mail"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Claims is the payload of the session credential. It carries enough to
// resolve the actor's role on every request without a user lookup.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Staff    bool   `json:"staff"`
	jwt.RegisteredClaims
}

type AuthService interface {
	// SendConfirmationCode runs the first step of the sign-in flow and
	// returns the normalized address the code was sent to.
	SendConfirmationCode(ctx context.Context, email string) (string, error)
	// IssueToken exchanges a confirmation code for a signed session token,
	// activating the account on its first successful exchange.
	IssueToken(ctx context.Context, email, code string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo        repository.UserRepository
	codes           auth.CodeStore
	mailer          mail.Sender
	jwtSecret       string
	tokenTTL        time.Duration
	confirmationTTL time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	codes auth.CodeStore,
	mailer mail.Sender,
	cfg *config.Config,
) AuthService {
	return &authService{
		userRepo:        userRepo,
		codes:           codes,
		mailer:          mailer,
		jwtSecret:       cfg.JWTSecret,
		tokenTTL:        cfg.TokenTTL,
		confirmationTTL: cfg.ConfirmationTTL,
	}
}

// punctuation stripped when deriving a username from an email address.
const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// DeriveUsername lowercases the address and drops punctuation, so
// "A.B@test.com" becomes "abtestcom".
func DeriveUsername(email string) string {
	email = strings.ToLower(email)
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(punctuation, r) {
			return -1
		}
		return r
	}, email)
}

func (s *authService) SendConfirmationCode(ctx context.Context, emailAddr string) (string, error) {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))

	user, err := s.userRepo.FindByEmail(emailAddr)
	switch {
	case err == nil:
		if user.Active {
			return "", ErrEmailRegistered
		}
		// inactive account re-requesting a code: reuse the record
	case errors.Is(err, gorm.ErrRecordNotFound):
		user, err = s.createInactiveUser(emailAddr)
		if err != nil {
			return "", err
		}
	default:
		return "", err
	}

	code, err := auth.GenerateCode()
	if err != nil {
		return "", err
	}
	hash, err := auth.HashCode(code)
	if err != nil {
		return "", err
	}
	if err := s.codes.Save(ctx, user.ID, hash, s.confirmationTTL); err != nil {
		return "", err
	}

	if err := s.mailer.SendConfirmationCode(emailAddr, code); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMailDelivery, err)
	}

	return emailAddr, nil
}

func (s *authService) createInactiveUser(emailAddr string) (*models.User, error) {
	username := DeriveUsername(emailAddr)
	taken, err := s.userRepo.UsernameTaken(username)
	if err != nil {
		return nil, err
	}
	if taken {
		// derived usernames can collide across addresses; disambiguate
		// with a short random suffix
		username = username + uuid.NewString()[:8]
	}

	user := &models.User{
		Username: username,
		Email:    emailAddr,
		Role:     models.RoleUser,
		Active:   false,
	}
	if err := s.userRepo.Create(user); err != nil {
		// a concurrent signup for the same address wins the insert race
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailRegistered
		}
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUsernameInUse
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) IssueToken(ctx context.Context, emailAddr, code string) (string, error) {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))

	user, err := s.userRepo.FindByEmail(emailAddr)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	hash, err := s.codes.Get(ctx, user.ID)
	if err != nil {
		if errors.Is(err, auth.ErrNoCode) {
			return "", ErrInvalidCode
		}
		return "", err
	}
	if err := auth.CheckCode(hash, code); err != nil {
		return "", ErrInvalidCode
	}

	// single use: a consumed code can never be exchanged again
	if err := s.codes.Consume(ctx, user.ID); err != nil {
		return "", err
	}

	if !user.Active {
		user.Active = true
		if err := s.userRepo.Save(user); err != nil {
			return "", err
		}
	}

	return s.generateToken(user)
}

func (s *authService) generateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		Staff:    user.IsStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
