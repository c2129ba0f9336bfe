package utils

import (
	"errors"
	"os"
	"time"

	"fieldserve/config"

	"github.com/golang-jwt/jwt"
)

// secretKey resolves the signing secret at call time so tokens pick up the
// loaded configuration. Falls back to the environment, then to a dev default
// (not recommended in production).
func secretKey() []byte {
	if s := config.AppConfig.JWTSecret; s != "" {
		return []byte(s)
	}
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("fieldserve-dev")
}

// Identity is the authenticated principal extracted from a token.
type Identity struct {
	ID       string
	Username string
	Role     string
}

// GenerateToken creates a signed JWT carrying the subject id, username and
// role. The token expires after the specified duration.
func GenerateToken(subject, username, role string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":      subject,
		"username": username,
		"role":     role,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// IdentityFromToken extracts the identity claims from a valid token string.
func IdentityFromToken(tokenString string) (*Identity, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("token does not contain a valid 'sub' claim")
	}
	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return nil, errors.New("token does not contain a valid 'role' claim")
	}
	username, _ := claims["username"].(string)

	return &Identity{ID: sub, Username: username, Role: role}, nil
}
