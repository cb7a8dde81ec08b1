package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cosiedzieje/markers-api/internal/auth"
)

// Session authenticates the request from the session cookie and injects the
// bound user id into the echo context under "user_id". A missing, malformed
// or tampered token is an expected condition, not a server fault: the
// request is rejected with 401 and nothing is logged above debug level.
func Session(issuer *auth.SessionIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(auth.SessionCookie)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session")
			}

			userID, err := issuer.Resolve(cookie.Value)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
			}

			c.Set("user_id", userID)
			return next(c)
		}
	}
}
