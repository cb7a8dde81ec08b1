package ports

import (
	"context"

	"github.com/cosiedzieje/markers-api/internal/core/domain"
)

// RegistrationInput carries an already-validated registration payload into
// the service layer.
type RegistrationInput struct {
	Email      string
	Password   string
	Username   string
	Name       string
	Surname    string
	Sex        domain.Sex
	Address    domain.Address
	Reputation int
}

type UserService interface {
	// Register hashes the password and persists user + profile atomically.
	Register(ctx context.Context, input RegistrationInput) error

	// Login verifies credentials. An unknown email yields (false, 0, nil)
	// and a wrong password (false, _, nil) so the boundary can respond with
	// one uniform "invalid credentials" message for both.
	Login(ctx context.Context, email, password string) (bool, int64, error)

	PublicProfile(ctx context.Context, userID int64) (*domain.PublicProfile, error)
	PrivateProfile(ctx context.Context, userID int64) (*domain.PrivateProfile, error)
}
