package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxUserID extracts the authenticated user id injected by the session
// middleware. Its absence means the handler was wired onto a route without
// the middleware; reject as unauthenticated rather than proceeding with a
// zero id.
func ctxUserID(c echo.Context) (int64, error) {
	id, _ := c.Get("user_id").(int64)
	if id <= 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return id, nil
}
