package ports

import (
	"context"

	"github.com/cosiedzieje/markers-api/internal/core/domain"
)

// UserRepository is the persistence interface for users and their profiles.
type UserRepository interface {
	// Register inserts the user row and its profile row in one transaction.
	// It reports true only when both inserts affect exactly one row.
	// Unique-constraint violations surface as domain.ErrEmailTaken or
	// domain.ErrNameTaken.
	Register(ctx context.Context, user *domain.User, profile *domain.UserProfile) (bool, error)

	// FindByEmail returns the credentials row for a login attempt, or
	// domain.ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// PublicProfile joins users and full_users_info for the public view.
	PublicProfile(ctx context.Context, userID int64) (*domain.PublicProfile, error)

	// PrivateProfile is the owner's own view; callers must pass their own
	// authenticated id, never one taken from the request.
	PrivateProfile(ctx context.Context, userID int64) (*domain.PrivateProfile, error)
}
