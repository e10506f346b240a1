package utils

import (
	"errors"
	"time"

	"campusx/internal/config"
	entity "campusx/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "campusx-api"

func GenerateToken(user *entity.User, roleName string) (string, error) {
	jwtCfg := config.LoadJWT()

	claims := &entity.JWTClaims{
		UserID:   user.ID,
		RoleID:   user.RoleID,
		RoleName: roleName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(jwtCfg.TTLHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtCfg.Secret)
}

func ValidateToken(tokenString string) (*entity.JWTClaims, error) {
	jwtCfg := config.LoadJWT()
	token, err := jwt.ParseWithClaims(tokenString, &entity.JWTClaims{}, func(t *jwt.Token) (interface{}, error) {
		return jwtCfg.Secret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*entity.JWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}

func GenerateRefreshToken(user *entity.User) (string, error) {
	jwtCfg := config.LoadJWT()

	claims := &entity.RefreshClaims{
		UserID: user.ID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(7 * 24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtCfg.RefreshSecret)
}

func ValidateRefreshToken(t string) (*entity.RefreshClaims, error) {
	jwtCfg := config.LoadJWT()
	token, err := jwt.ParseWithClaims(t, &entity.RefreshClaims{}, func(token *jwt.Token) (interface{}, error) {
		return jwtCfg.RefreshSecret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*entity.RefreshClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid refresh token")
	}
	return claims, nil
}
