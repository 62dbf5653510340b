package auth

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	userIDKey = "userID"
	roleKey   = "role"

	tokenTTL = 72 * time.Hour
)

func SignToken(userID uint, role string, secret []byte) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  time.Now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func parseBearer(c echo.Context, secret []byte) (uint, string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return 0, "", fmt.Errorf("missing bearer token")
	}

	tokenString := strings.TrimPrefix(header, "Bearer ")
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return 0, "", fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return 0, "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", fmt.Errorf("invalid token claims")
	}
	subRaw, ok := claims["sub"].(float64)
	if !ok {
		return 0, "", fmt.Errorf("invalid subject claim")
	}
	role, _ := claims["role"].(string)

	return uint(subRaw), role, nil
}

// Require rejects requests without a valid bearer token.
func Require(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, role, err := parseBearer(c, secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, token failed")
			}
			c.Set(userIDKey, userID)
			c.Set(roleKey, role)
			return next(c)
		}
	}
}

// Optional sets the caller identity when a valid token is present and lets the
// request through anonymously otherwise. The public catalog listing needs this
// to apply the retailer dashboard scope.
func Optional(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if userID, role, err := parseBearer(c, secret); err == nil {
				c.Set(userIDKey, userID)
				c.Set(roleKey, role)
			}
			return next(c)
		}
	}
}

// RequireRoles gates a route to the given roles. Must run after Require.
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := Role(c)
			for _, r := range roles {
				if role == r {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized for this action")
		}
	}
}

func UserID(c echo.Context) (uint, bool) {
	id, ok := c.Get(userIDKey).(uint)
	return id, ok
}

func Role(c echo.Context) string {
	role, _ := c.Get(roleKey).(string)
	return role
}
