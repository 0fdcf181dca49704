// file: utils/jwt.go
package utils

import (
	"os"
	"time"

	"github.com/Mmo23/fifty-flag-forge/models"
	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret = func() []byte {
	if s := os.Getenv("FORGE_JWT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("a-very-secure-secret-that-should-be-in-config-file")
}()

type Claims struct {
	ParticipantID uint32                 `json:"participant_id"`
	Username      string                 `json:"username"`
	Role          models.ParticipantRole `json:"role"`
	jwt.RegisteredClaims
}

func GenerateToken(p models.Participant) (string, error) {
	claims := Claims{
		ParticipantID: p.ID,
		Username:      p.Username,
		Role:          p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(7 * 24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, err
}
