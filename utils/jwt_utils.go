package utils

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

const (
	VisitorCookie = "visitor"
	visitorIssuer = "greenbloom"
)

// GenerateVisitorToken signs a token naming visitorID as its subject.
func GenerateVisitorToken(secret, visitorID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		Subject:   visitorID,
		Issuer:    visitorIssuer,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(ttl).Unix(),
	})

	token, err := claims.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return token, nil
}

func SetVisitorCookie(c *fiber.Ctx, token string, ttl time.Duration) {
	cookie := fiber.Cookie{
		Name:     VisitorCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		Secure:   c.Protocol() == "https",
		SameSite: "Lax",
	}
	c.Cookie(&cookie)
}

// ParseVisitorToken returns the visitor id of a valid token.
func ParseVisitorToken(secret, tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.StandardClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})

	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*jwt.StandardClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", fiber.ErrUnauthorized
	}

	return claims.Subject, nil
}
