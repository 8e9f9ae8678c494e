package helper

import (
	"fmt"
	"time"

	"event_ticketing/config"
	"event_ticketing/model"

	"github.com/golang-jwt/jwt/v5"
)

// JwtSecret is resolved lazily so .env is loaded first. Tests may set it
// directly.
var JwtSecret []byte

func secret() []byte {
	if len(JwtSecret) == 0 {
		JwtSecret = []byte(config.Config("JWT_SECRET"))
	}
	return JwtSecret
}

func tokenTTL() time.Duration {
	ttl, err := time.ParseDuration(config.ConfigDefault("JWT_EXPIRE", "720h"))
	if err != nil {
		return 720 * time.Hour // 30 days
	}
	return ttl
}

func GenerateToken(user *model.User) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["userId"] = user.ID
	claims["email"] = user.Email
	claims["exp"] = time.Now().Add(tokenTTL()).Unix()

	return token.SignedString(secret())
}

func ParseToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret(), nil
	})
}

// ClaimFromToken pulls the identity claims out of a parsed token.
func ClaimFromToken(token *jwt.Token) (model.TokenClaim, bool) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return model.TokenClaim{}, false
	}
	userIdFloat, ok := claims["userId"].(float64)
	if !ok || userIdFloat == 0 {
		return model.TokenClaim{}, false
	}
	email, _ := claims["email"].(string)
	return model.TokenClaim{UserId: uint(userIdFloat), Email: email}, true
}
