package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/cosiedzieje/markers-api/internal/auth"
	"github.com/cosiedzieje/markers-api/internal/core/domain"
	"github.com/cosiedzieje/markers-api/internal/core/ports"
)

// UserService implements registration, login and profile lookups.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// Register hashes the password and writes the user and profile rows in one
// transaction. Duplicate email/name propagate as the domain conflict errors
// so the boundary can name the offending field.
func (s *UserService) Register(ctx context.Context, input ports.RegistrationInput) error {
	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return err
	}

	user := &domain.User{
		Email:        input.Email,
		Name:         input.Username,
		PasswordHash: hash,
	}
	profile := &domain.UserProfile{
		Name:       input.Name,
		Surname:    input.Surname,
		Sex:        input.Sex,
		Address:    input.Address,
		Reputation: input.Reputation,
	}

	added, err := s.repo.Register(ctx, user, profile)
	if err != nil {
		return err
	}
	if !added {
		s.logger.Warn().Str("email", input.Email).Msg("zero rows affected, user not added")
		return domain.ErrUserNotFound
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user registered")
	return nil
}

// Login looks the user up by email and verifies the password. An absent user
// is (false, 0, nil), not an error: the boundary renders the same "invalid
// credentials" message for unknown email and wrong password so that neither
// case leaks which one it was.
func (s *UserService) Login(ctx context.Context, email, password string) (bool, int64, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return false, 0, nil
		}
		return false, 0, err
	}

	ok, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		// Only a malformed stored hash lands here; a plain mismatch is
		// (false, nil).
		return false, 0, err
	}

	return ok, user.ID, nil
}

func (s *UserService) PublicProfile(ctx context.Context, userID int64) (*domain.PublicProfile, error) {
	return s.repo.PublicProfile(ctx, userID)
}

func (s *UserService) PrivateProfile(ctx context.Context, userID int64) (*domain.PrivateProfile, error) {
	return s.repo.PrivateProfile(ctx, userID)
}
