package http

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"porter/internal/core/domain/model/delivery"
	"porter/internal/core/domain/model/kernel"
)

// ErrInvalidTokenClaims covers tokens that verified but do not carry the
// subject and role claims every request needs.
var ErrInvalidTokenClaims = errors.New("token is missing subject or role claims")

// AuthMiddleware verifies bearer tokens signed with the shared secret.
// Claims are validated lazily per request by actorFromContext.
func AuthMiddleware(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(secret),
	})
}

// actorFromContext builds the acting identity from the verified token.
// The subject claim carries the actor id, the role claim its role.
func actorFromContext(c echo.Context) (delivery.Actor, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return delivery.Actor{}, ErrInvalidTokenClaims
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return delivery.Actor{}, ErrInvalidTokenClaims
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return delivery.Actor{}, ErrInvalidTokenClaims
	}

	roleName, ok := claims["role"].(string)
	if !ok {
		return delivery.Actor{}, ErrInvalidTokenClaims
	}

	id, err := kernel.UUIDFromString(subject)
	if err != nil {
		return delivery.Actor{}, ErrInvalidTokenClaims
	}

	role, err := delivery.RoleFromString(roleName)
	if err != nil {
		return delivery.Actor{}, err
	}

	return delivery.NewActor(id, role)
}
