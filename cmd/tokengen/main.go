// Command tokengen prints a bearer token for exercising the protected API locally.
//
//	tokengen -sub teacher@example.com -ttl 24h
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"mentorai/backend/config"
)

func main() {
	sub := flag.String("sub", "dev", "subject claim")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	settings, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	logger := config.InitLogger(settings.LogLevel, "text")
	logger.SetOutput(os.Stderr)

	if settings.UsingDefaultSecret() {
		logger.Warn("JWT_SECRET is not set, signing with the development secret")
	}

	token, err := signToken(settings.JWTSecret, *sub, *ttl, time.Now())
	if err != nil {
		logger.WithError(err).Fatal("Failed to sign token")
	}
	logger.WithFields(logrus.Fields{"sub": *sub, "ttl": ttl.String()}).Debug("Token signed")
	fmt.Println(token)
}

func signToken(secret, sub string, ttl time.Duration, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub": sub,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
