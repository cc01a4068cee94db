package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Operator is the authenticated company-side caller.
type Operator struct {
	ID        string
	CompanyID string
}

// JWTManager validates operator JWTs and mints them for local tooling.
// Production tokens come from the external identity provider and share
// the secret, issuer and company_id claim.
type JWTManager struct {
	secret    []byte
	issuer    string
	accessTTL time.Duration
}

// NewJWTManager creates a new JWT manager.
// secret must be at least 32 characters for HS256 security.
func NewJWTManager(secret string, issuer string, accessTTL time.Duration) *JWTManager {
	return &JWTManager{
		secret:    []byte(secret),
		issuer:    issuer,
		accessTTL: accessTTL,
	}
}

// operatorClaims extends standard JWT claims with the company scope.
type operatorClaims struct {
	jwt.RegisteredClaims
	CompanyID string `json:"company_id"`
}

// GenerateOperatorToken creates a signed HS256 JWT with the operator as
// subject and the company as a custom claim.
func (m *JWTManager) GenerateOperatorToken(operatorID, companyID string) (string, error) {
	if operatorID == "" || companyID == "" {
		return "", errors.New("operator id and company id are required")
	}

	now := time.Now()
	claims := operatorClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   operatorID,
			Issuer:    m.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		CompanyID: companyID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// ValidateOperatorToken parses and validates an operator JWT.
func (m *JWTManager) ValidateOperatorToken(tokenString string) (Operator, error) {
	if tokenString == "" {
		return Operator{}, fmt.Errorf("token is empty")
	}

	token, err := jwt.ParseWithClaims(tokenString, &operatorClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(m.issuer), jwt.WithExpirationRequired())

	if err != nil {
		return Operator{}, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*operatorClaims)
	if !ok || !token.Valid {
		return Operator{}, fmt.Errorf("invalid token claims")
	}

	if claims.Subject == "" {
		return Operator{}, fmt.Errorf("missing subject")
	}
	if claims.CompanyID == "" {
		return Operator{}, fmt.Errorf("missing company_id claim")
	}

	return Operator{ID: claims.Subject, CompanyID: claims.CompanyID}, nil
}
