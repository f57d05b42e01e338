package utils

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "restaurant-pos-backend"

// Gin context keys set by the auth middleware.
const (
	ContextStaffIDKey  = "staffID"
	ContextUsernameKey = "username"
	ContextRoleKey     = "userRole"
)

var (
	jwtMu        sync.RWMutex
	jwtSecretKey []byte
	accessTTL    = 12 * time.Hour
)

// ErrJWTNotConfigured is returned when tokens are issued or checked before ConfigureJWT.
var ErrJWTNotConfigured = errors.New("jwt secret is not configured")

// ConfigureJWT sets the signing secret and access token lifetime.
func ConfigureJWT(secret string, ttl time.Duration) {
	jwtMu.Lock()
	defer jwtMu.Unlock()
	jwtSecretKey = []byte(secret)
	if ttl > 0 {
		accessTTL = ttl
	}
}

func jwtSettings() ([]byte, time.Duration) {
	jwtMu.RLock()
	defer jwtMu.RUnlock()
	return jwtSecretKey, accessTTL
}

// Claims defines the JWT claims structure
type Claims struct {
	StaffID  int64  `json:"staff_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateAccessToken creates a signed access token and returns its expiry.
func GenerateAccessToken(staffID int64, username string, role string) (string, time.Time, error) {
	secret, ttl := jwtSettings()
	if len(secret) == 0 {
		return "", time.Time{}, ErrJWTNotConfigured
	}

	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := &Claims{
		StaffID:  staffID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return tokenString, expiresAt, nil
}

// ValidateToken parses and validates a JWT token string.
func ValidateToken(tokenString string) (*Claims, error) {
	secret, _ := jwtSettings()
	if len(secret) == 0 {
		return nil, ErrJWTNotConfigured
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
