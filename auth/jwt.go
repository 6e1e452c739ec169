package auth

import (
	"errors"
	"time"

	"wikiarea-backend/internal/config"
	"wikiarea-backend/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried in the bearer token. Expiry is a fixed 24 hours (config
// TokenTTLHours) from issue; there is no refresh flow.
type Claims struct {
	Username     string `json:"name"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	Role         string `json:"role"`
	Department   string `json:"department"`
	AuthProvider string `json:"authProvider"`
	jwt.RegisteredClaims
}

// GenerateToken issues a signed bearer token for the user and returns the
// token string together with its expiry instant.
func GenerateToken(user *domain.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(config.AppConfig.TokenTTLHours) * time.Hour)

	claims := Claims{
		Username:     user.Username,
		Email:        user.Email,
		DisplayName:  user.DisplayName,
		Role:         string(user.Role),
		Department:   user.Department,
		AuthProvider: user.AuthProvider,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    config.AppConfig.JWTIssuer,
			Audience:  jwt.ClaimStrings{config.AppConfig.JWTAudience},
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(config.AppConfig.JWTSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// VerifyToken parses and validates a bearer token and returns its claims.
func VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token invalid")
	}
	return claims, nil
}
