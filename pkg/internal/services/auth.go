package services

import (
	"fmt"
	"strconv"
	"time"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

const tokenIssuer = "yatube"

func tokenSecret() []byte {
	return []byte(viper.GetString("security.jwt_secret"))
}

func IssueToken(user models.User) (string, error) {
	ttl := viper.GetDuration("security.token_ttl")
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   strconv.FormatUint(uint64(user.ID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
	return token.SignedString(tokenSecret())
}

// ReadToken validates the token and returns the id of the user it was issued to.
func ReadToken(raw string) (uint, error) {
	var claims jwt.RegisteredClaims
	if _, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (any, error) {
		return tokenSecret(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(tokenIssuer)); err != nil {
		return 0, fmt.Errorf("invalid token: %v", err)
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid token subject: %v", err)
	}
	return uint(id), nil
}
