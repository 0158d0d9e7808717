package auth

import (
	"time"

	"github.com/dmitrijs2005/indexkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the standard registered claims plus the subject's
// permission grants.
type Claims struct {
	jwt.RegisteredClaims
	Subject string   `json:"sub_name,omitempty"`
	Grants  []string `json:"grants"`
}

// GenerateToken signs an HS256 token carrying the given grants.
func GenerateToken(subject string, grants []string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		Subject: subject,
		Grants:  grants,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// CheckerFromToken validates the token and returns a permission Checker
// backed by the token's grants.
func CheckerFromToken(tokenString string, secretKey []byte) (Checker, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return NewGrantsChecker(claims.Grants), nil
}
