package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is how long an issued bearer token stays valid.
const TokenTTL = 7 * 24 * time.Hour

type CustomClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Helper methods for role checking
func (cc *CustomClaims) IsAdmin() bool {
	return cc.Role == "admin"
}

func (cc *CustomClaims) IsCustomer() bool {
	return cc.Role == "customer"
}

func (cc *CustomClaims) IsTechnician() bool {
	return cc.Role == "technician"
}

func (cc *CustomClaims) HasRole(role string) bool {
	return cc.Role == role
}

func (cc *CustomClaims) IsOwner(userID string) bool {
	return cc.Subject == userID
}

func (cc *CustomClaims) UserID() string {
	return cc.Subject
}

// GenerateToken issues a signed bearer token carrying the user id and role.
func GenerateToken(secret []byte, userID, role string) (string, error) {
	now := time.Now()
	claims := &CustomClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func ValidateToken(secret []byte, tokenStr string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	return claims, nil
}
