package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/d60-Lab/content-gallery/config"
	"github.com/d60-Lab/content-gallery/pkg/logger"
)

const tokenTTL = 24 * time.Hour

// User is the identity payload returned with a successful login.
type User struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Claims is what a verified bearer token asserts.
type Claims struct {
	Username string
	Role     string
}

type adminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService verifies the single configured admin identity and issues
// time-bounded signed tokens. It is stateless: tokens are valid until
// natural expiry, with no session store or revocation list.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *User, error)
	Verify(ctx context.Context, token string) (*Claims, error)
}

type authService struct {
	cfg config.AuthConfig
}

func NewAuthService(cfg config.AuthConfig) AuthService { return &authService{cfg: cfg} }

// Login checks credentials against the configured admin identity. A
// deployment missing its admin username, password hash or signing secret
// gets ErrNotConfigured so operators can tell "server not set up" apart
// from "wrong password".
func (s *authService) Login(ctx context.Context, username, password string) (string, *User, error) {
	if s.cfg.AdminUsername == "" || s.cfg.AdminPasswordHash == "" || s.cfg.JWTSecret == "" {
		logger.Error("admin credentials or jwt secret missing from configuration")
		return "", nil, ErrNotConfigured
	}
	if username != s.cfg.AdminUsername {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now()
	claims := adminClaims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.cfg.AdminUsername,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, &User{Username: s.cfg.AdminUsername, Role: "admin"}, nil
}

// Verify validates signature and expiry without any store lookup.
func (s *authService) Verify(ctx context.Context, token string) (*Claims, error) {
	if s.cfg.JWTSecret == "" {
		logger.Error("jwt secret missing from configuration")
		return nil, ErrNotConfigured
	}
	var claims adminClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Role != "admin" {
		return nil, ErrForbidden
	}
	return &Claims{Username: claims.Subject, Role: claims.Role}, nil
}
