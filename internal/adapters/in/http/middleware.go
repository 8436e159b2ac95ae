package http

import (
	"net/http"
	"strings"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// callerIDKey is the echo context key under which the identity middleware
// stores the authenticated caller's ID.
const callerIDKey = "callerID"

// NewIdentityMiddleware returns echo middleware that authenticates requests
// with a bearer token. The token's subject claim carries the caller's user ID;
// handlers read it back with CallerID and use it as the acting party for the
// operation.
func NewIdentityMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				return ctx.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "Missing bearer token",
				})
			}

			parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return secret, nil
			})
			if err != nil || !parsed.Valid {
				return ctx.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "Invalid bearer token",
				})
			}

			subject, err := parsed.Claims.GetSubject()
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "Token has no subject",
				})
			}

			callerID, err := kernel.UUIDFromString(subject)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "Token subject is not a valid user ID",
				})
			}

			ctx.Set(callerIDKey, callerID)
			return next(ctx)
		}
	}
}

// CallerID returns the authenticated caller's ID placed by the identity
// middleware. The second return value is false on routes that skipped the
// middleware.
func CallerID(ctx echo.Context) (kernel.UUID, bool) {
	callerID, ok := ctx.Get(callerIDKey).(kernel.UUID)
	return callerID, ok
}
