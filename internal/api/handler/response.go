package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// envelope is the uniform response wrapper: {"status":"ok","res":<payload>}
// on success, {"status":"error","res":[<message>...]} on failure. Operational
// failures are deliberately rendered with HTTP 200: the status lives in the
// body. Only the 401 (unauthenticated) and 404 (unknown path) cases produced
// outside the handlers carry a non-200 code.
type envelope struct {
	Status string `json:"status"`
	Res    any    `json:"res"`
}

func ok(c echo.Context, payload any) error {
	return c.JSON(http.StatusOK, envelope{Status: "ok", Res: payload})
}

func fail(c echo.Context, messages ...string) error {
	return c.JSON(http.StatusOK, envelope{Status: "error", Res: messages})
}

// Messages shared by multiple handlers. Unknown email and wrong password use
// the same string on purpose, so a caller cannot probe which emails exist.
const (
	msgInvalidBody        = "invalid request body"
	msgInvalidCredentials = "invalid email or password"
	msgUnexpected         = "unexpected error"
)
