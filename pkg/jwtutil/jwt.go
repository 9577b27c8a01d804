package jwtutil

import (
	"errors"
	"fmt"
	"time"

	"github.com/NehaKoffeeKodes/fintech-core-backend-sub001/pkg/config"

	"github.com/golang-jwt/jwt/v4"
)

var (
	signingKey      []byte
	expirationHours = 24
)

// UserClaims represents the JWT claims for admin authentication
type UserClaims struct {
	Email      string  `json:"email"`
	UserID     uint    `json:"user_id"`
	Superadmin bool    `json:"superadmin,omitempty"` // Platform-level admin, may manage tenant accounts
	TenantID   *string `json:"tenant_id,omitempty"`  // Tenant identifier for tenant-scoped requests
	TenantName string  `json:"tenant_name,omitempty"`
	Role       string  `json:"role,omitempty"` // User's role within the tenant
	jwt.RegisteredClaims
}

// Initialize configures the JWT utility from configuration
func Initialize(cfg *config.JWTConfig) {
	signingKey = []byte(cfg.SigningKey)
	if cfg.ExpirationHours > 0 {
		expirationHours = cfg.ExpirationHours
	}
}

// GenerateToken creates a JWT token with user and tenant information
func GenerateToken(email string, userID uint, superadmin bool, tenantID *string, tenantName, role string) (string, error) {
	if len(signingKey) == 0 {
		return "", errors.New("JWT utility is not initialized")
	}

	claims := UserClaims{
		Email:      email,
		UserID:     userID,
		Superadmin: superadmin,
		TenantID:   tenantID,
		TenantName: tenantName,
		Role:       role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expirationHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(signingKey)
}

// ValidateToken validates and parses the JWT token
func ValidateToken(tokenString string) (*UserClaims, error) {
	if len(signingKey) == 0 {
		return nil, errors.New("JWT utility is not initialized")
	}

	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return signingKey, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
