package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// PlanMiddleware reads an optional Bearer token carrying a "plan" claim
// and attaches the tier to the request context. Unlike an auth wall, a
// missing or invalid token is not an error: the caller simply stays on
// whatever tier the request body names, ultimately falling back to free.
func PlanMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || secret == "" {
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}

		plan, err := validatePlanToken(secret, parts[1])
		if err != nil {
			c.Next()
			return
		}

		c.Set("planTier", plan)
		c.Next()
	}
}

// MintPlanToken issues a signed plan-tier token. Used by tooling and tests.
func MintPlanToken(secret, plan string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("empty plan token secret")
	}

	claims := jwt.MapClaims{
		"plan": plan,
		"exp":  time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func validatePlanToken(secret, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}

	plan, _ := claims["plan"].(string)
	if plan == "" {
		return "", errors.New("token has no plan claim")
	}
	return plan, nil
}
