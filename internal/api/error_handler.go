package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// envelope mirrors the handler package's response wrapper; the error handler
// renders the same shape for errors that never reach a handler (unknown
// paths, rejected sessions, panics).
type envelope struct {
	Status string `json:"status"`
	Res    any    `json:"res"`
}

func errorEnvelope(messages ...string) envelope {
	return envelope{Status: "error", Res: messages}
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler implementing the
// boundary error contract:
//   - an unmatched path is a 404 error envelope naming the path, except for
//     OPTIONS requests, which succeed with an empty payload so CORS
//     preflights to any path never fail;
//   - a rejected session is a fixed 401 envelope, logged at debug only
//     (expected, not exceptional);
//   - anything else is logged with detail server-side and surfaced as an
//     opaque generic message, never the raw error.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			switch he.Code {
			case http.StatusNotFound, http.StatusMethodNotAllowed:
				if c.Request().Method == http.MethodOptions {
					_ = c.JSON(http.StatusOK, envelope{Status: "ok", Res: ""})
					return
				}
				_ = c.JSON(http.StatusNotFound,
					errorEnvelope(fmt.Sprintf("path %s does not exist", c.Request().URL.Path)))
				return
			case http.StatusUnauthorized:
				log.Debug().
					Str("path", c.Request().URL.Path).
					Msg("unauthenticated request")
				_ = c.JSON(http.StatusUnauthorized, errorEnvelope("you are not logged in"))
				return
			}
		}

		// Unexpected error: log the real cause, return a generic message.
		// The failing request fails; siblings are unaffected.
		log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Request().URL.Path).
			Msg("unhandled error")
		_ = c.JSON(http.StatusOK, errorEnvelope("unexpected error"))
	}
}
