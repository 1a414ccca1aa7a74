package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"sitediary/internal/config"
	"sitediary/internal/domain"
	"sitediary/internal/port"
)

// Claims is the session token payload. Older tokens carried the user id in
// "id" and the login in "email"; both are still honoured when parsing.
type Claims struct {
	jwt.RegisteredClaims
	LegacyID string          `json:"id,omitempty"`
	Username string          `json:"username,omitempty"`
	Email    string          `json:"email,omitempty"`
	Role     domain.UserRole `json:"role"`
}

// Identity is the authenticated caller resolved from a session token.
// UserID is uuid.Nil when the token only named a username.
type Identity struct {
	UserID   uuid.UUID
	Username string
	Role     domain.UserRole
}

// IsAdmin reports whether the caller has the admin role.
func (i *Identity) IsAdmin() bool {
	return i.Role == domain.RoleAdmin
}

// LoginInput is the DTO for login requests.
type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Session is a freshly issued session token.
type Session struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *domain.User `json:"user"`
}

// AuthService defines the authentication contract.
type AuthService interface {
	Login(ctx context.Context, input LoginInput) (*Session, error)
	ValidateToken(tokenString string) (*Identity, error)
}

type authService struct {
	userRepo port.UserRepository
	cfg      config.JWTConfig
	now      func() time.Time
}

// NewAuthService creates a new AuthService implementation.
func NewAuthService(userRepo port.UserRepository, cfg config.JWTConfig) AuthService {
	return &authService{userRepo: userRepo, cfg: cfg, now: time.Now}
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*Session, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("authService.Login: %w", err)
	}
	// Inactive accounts get the same answer as a wrong password.
	if !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *authService) issue(user *domain.User) (*Session, error) {
	now := s.now()
	expiresAt := now.Add(s.cfg.Expiry)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Username: user.Username,
		Role:     user.Role,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("signing session token: %w", err)
	}
	return &Session{Token: signed, ExpiresAt: expiresAt, User: user}, nil
}

func (s *authService) ValidateToken(tokenString string) (*Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	return claims.Identity()
}

// Identity resolves the caller named by the claims.
func (c *Claims) Identity() (*Identity, error) {
	rawID := c.Subject
	if rawID == "" {
		rawID = c.LegacyID
	}
	username := c.Username
	if username == "" {
		username = c.Email
	}
	if rawID == "" && username == "" {
		return nil, domain.ErrUnauthorized
	}

	id := &Identity{Username: username, Role: c.Role}
	if rawID != "" {
		parsed, err := uuid.Parse(rawID)
		if err != nil {
			return nil, domain.ErrUnauthorized
		}
		id.UserID = parsed
	}
	if !domain.ValidRole(id.Role) {
		id.Role = domain.RoleUser
	}
	return id, nil
}

// HashPassword returns the bcrypt hash stored in app_users.password_hash.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}
