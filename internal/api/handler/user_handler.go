package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cosiedzieje/markers-api/internal/api/metrics"
	"github.com/cosiedzieje/markers-api/internal/auth"
	"github.com/cosiedzieje/markers-api/internal/core/domain"
	"github.com/cosiedzieje/markers-api/internal/core/ports"
)

// UserHandler handles registration, the login/logout session flow and
// profile reads.
type UserHandler struct {
	users   ports.UserService
	session *auth.SessionIssuer
	logger  zerolog.Logger
}

func NewUserHandler(users ports.UserService, session *auth.SessionIssuer, logger zerolog.Logger) *UserHandler {
	return &UserHandler{users: users, session: session, logger: logger}
}

// Register handles POST /api/register.
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, msgInvalidBody)
	}
	if err := c.Validate(&req); err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			return fail(c, ve.Fields...)
		}
		h.logger.Error().Err(err).Msg("validator failure")
		return fail(c, msgUnexpected)
	}

	err := h.users.Register(c.Request().Context(), toRegistrationInput(req))
	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		return fail(c, "this email is already taken")
	case errors.Is(err, domain.ErrNameTaken):
		return fail(c, "this username is already taken")
	case err != nil:
		h.logger.Error().Err(err).Msg("registration failed")
		return fail(c, msgUnexpected)
	}

	metrics.UsersRegisteredTotal.Inc()
	return ok(c, nil)
}

// Login handles POST /api/login. On success the session token is issued and
// stored in an HttpOnly cookie; the response body carries no token.
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, msgInvalidBody)
	}

	authenticated, userID, err := h.users.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Error().Err(err).Msg("login failed")
		return fail(c, "unexpected error during login")
	}
	if !authenticated {
		// Unknown email and wrong password produce this same message.
		metrics.LoginsTotal.WithLabelValues("failed").Inc()
		return fail(c, msgInvalidCredentials)
	}

	token, err := h.session.Issue(userID)
	if err != nil {
		h.logger.Error().Err(err).Int64("user_id", userID).Msg("session issue failed")
		return fail(c, msgUnexpected)
	}

	c.SetCookie(sessionCookie(token, h.session.TTL()))
	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	h.logger.Info().Int64("user_id", userID).Msg("logged in")
	return ok(c, nil)
}

// Logout handles GET /api/logout. There is no server-side session state; the
// cookie is simply discarded.
func (h *UserHandler) Logout(c echo.Context) error {
	c.SetCookie(expiredSessionCookie())
	return ok(c, nil)
}

// IsLogged handles GET /api/is_logged. The session middleware has already
// verified the token by the time this runs.
func (h *UserHandler) IsLogged(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}
	return ok(c, "you are logged in")
}

// PrivateProfile handles GET /api/user_data: the caller's own profile,
// including email and address. The id always comes from the verified
// session, never from the request.
func (h *UserHandler) PrivateProfile(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	profile, err := h.users.PrivateProfile(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return fail(c, "user not found")
		}
		h.logger.Error().Err(err).Int64("user_id", userID).Msg("private profile lookup failed")
		return fail(c, msgUnexpected)
	}
	return ok(c, profile)
}

// PublicProfile handles GET /api/user/:id.
func (h *UserHandler) PublicProfile(c echo.Context) error {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, "invalid user id")
	}

	profile, err := h.users.PublicProfile(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return fail(c, "user not found")
		}
		h.logger.Error().Err(err).Int64("user_id", userID).Msg("public profile lookup failed")
		return fail(c, msgUnexpected)
	}
	return ok(c, profile)
}

func sessionCookie(token string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func expiredSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
