package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/steelstack/crm-api/internal/config"
	"github.com/steelstack/crm-api/internal/domain"
)

// SessionClaims are the JWT claims carried in the session cookie
type SessionClaims struct {
	UserID      uint   `json:"uid"`
	Username    string `json:"username"`
	DisplayName string `json:"name"`
	Role        string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies session tokens
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

// NewTokenManager creates a token manager from auth config
func NewTokenManager(cfg *config.AuthConfig, issuer string) *TokenManager {
	return &TokenManager{
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.SessionTTLDuration(),
		issuer: issuer,
	}
}

// Sign creates a signed session token for the given user
func (t *TokenManager) Sign(user *domain.User) (string, error) {
	now := time.Now().UTC()
	claims := &SessionClaims{
		UserID:      user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName(),
		Role:        string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Verify validates a session token and returns the user context
func (t *TokenManager) Verify(tokenString string) (*UserContext, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	},
		jwt.WithIssuer(t.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid session token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}

	role := domain.UserRole(claims.Role)
	if role != domain.RoleAdmin && role != domain.RoleSalesperson {
		return nil, fmt.Errorf("invalid session token: unknown role")
	}

	return &UserContext{
		UserID:      claims.UserID,
		Username:    claims.Username,
		DisplayName: claims.DisplayName,
		Role:        role,
	}, nil
}
