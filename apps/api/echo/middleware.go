package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// roleMiddleware lets through the users holding the client role `name` ("student" | "staff").
func roleMiddleware(name string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			usr := claims.user()
			if usr.HasRoleName(name) {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}
