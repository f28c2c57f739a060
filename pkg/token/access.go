package token

import (
	"economy_backend/internal/model"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func GenerateAccessToken(info *model.Admin, secretKey []byte, ttl time.Duration) (string, error) {
	claims := model.AdminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        strconv.FormatInt(info.ID, 10),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(secretKey)
}

func VerifyToken(tokenStr string, secretKey []byte) (*model.AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &model.AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		_, ok := token.Method.(*jwt.SigningMethodHMAC)
		if !ok {
			return nil, errors.New("unexpected token signing method")
		}

		return secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %v", err)
	}

	claims, ok := token.Claims.(*model.AdminClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}
