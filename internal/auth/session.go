package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "session"

// ErrInvalidSession covers every way a presented token can fail: missing,
// malformed, wrong signature, expired. Callers treat it as "unauthenticated",
// never as a server fault.
var ErrInvalidSession = errors.New("invalid session token")

type sessionClaims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"uid"`
}

// SessionIssuer mints and verifies the opaque session tokens held by clients
// in a cookie. Tokens are HMAC-signed (HS256) with a server-held secret and
// bind exactly one piece of state, the user id; there is no server-side
// session table.
type SessionIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewSessionIssuer(secret string, ttl time.Duration) *SessionIssuer {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &SessionIssuer{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime, which the boundary also uses as
// the cookie max age.
func (s *SessionIssuer) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token binding userID. A client cannot alter the bound id
// without invalidating the signature.
func (s *SessionIssuer) Issue(userID int64) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		UserID: userID,
	})
	return token.SignedString(s.secret)
}

// Resolve verifies the token and extracts the bound user id. Any failure
// collapses into ErrInvalidSession.
func (s *SessionIssuer) Resolve(token string) (int64, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid || claims.UserID <= 0 {
		return 0, ErrInvalidSession
	}
	return claims.UserID, nil
}
