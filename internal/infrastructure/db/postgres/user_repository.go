package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/cosiedzieje/markers-api/internal/core/domain"
)

// Unique constraint names from the initial migration; the conflict mapping
// keys off these, not off error message text.
const (
	constraintEmail = "users_email_key"
	constraintName  = "users_name_key"
)

const pgUniqueViolation = "23505"

// UserRepository implements ports.UserRepository on PostgreSQL.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Register inserts the credentials row and the profile row in one
// transaction, using the id generated by the first insert as the foreign key
// of the second. Either both rows exist afterwards or neither does.
func (r *UserRepository) Register(ctx context.Context, user *domain.User, profile *domain.UserProfile) (bool, error) {
	sexCode, err := profile.Sex.Code()
	if err != nil {
		return false, err
	}
	addressJSON, err := json.Marshal(profile.Address)
	if err != nil {
		return false, fmt.Errorf("serialize address: %w", err)
	}

	added := false
	err = withTx(ctx, r.db, func(tx DBTX) error {
		err := tx.QueryRowContext(ctx,
			`INSERT INTO users (email, name, password) VALUES ($1, $2, $3) RETURNING id`,
			user.Email, user.Name, user.PasswordHash,
		).Scan(&user.ID)
		if err != nil {
			return mapConflict(err)
		}

		res, err := tx.ExecContext(ctx,
			`INSERT INTO full_users_info (id, name, surname, sex, address, reputation)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			user.ID, profile.Name, profile.Surname, sexCode, addressJSON, profile.Reputation,
		)
		if err != nil {
			return fmt.Errorf("insert profile: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		added = n == 1
		return nil
	})
	if err != nil {
		return false, err
	}
	return added, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user := &domain.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, name, password FROM users WHERE email = $1`,
		email,
	).Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) PublicProfile(ctx context.Context, userID int64) (*domain.PublicProfile, error) {
	var (
		p       domain.PublicProfile
		sexCode string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT u.name, ext.name, ext.surname, ext.sex, ext.reputation
		 FROM users AS u
		 INNER JOIN full_users_info AS ext ON u.id = ext.id
		 WHERE u.id = $1`,
		userID,
	).Scan(&p.Username, &p.Name, &p.Surname, &sexCode, &p.Reputation)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("public profile: %w", err)
	}

	if p.Sex, err = domain.SexFromCode(sexCode); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *UserRepository) PrivateProfile(ctx context.Context, userID int64) (*domain.PrivateProfile, error) {
	var (
		p           domain.PrivateProfile
		sexCode     string
		addressJSON []byte
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT u.name, ext.name, ext.surname, u.email, ext.sex, ext.address, ext.reputation
		 FROM users AS u
		 INNER JOIN full_users_info AS ext ON u.id = ext.id
		 WHERE u.id = $1`,
		userID,
	).Scan(&p.Username, &p.Name, &p.Surname, &p.Email, &sexCode, &addressJSON, &p.Reputation)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("private profile: %w", err)
	}

	if p.Sex, err = domain.SexFromCode(sexCode); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(addressJSON, &p.Address); err != nil {
		return nil, fmt.Errorf("deserialize address: %w", err)
	}
	return &p, nil
}

// mapConflict translates a unique-constraint violation on the users table
// into the matching domain conflict error.
func mapConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		switch pgErr.ConstraintName {
		case constraintEmail:
			return domain.ErrEmailTaken
		case constraintName:
			return domain.ErrNameTaken
		}
	}
	return fmt.Errorf("insert user: %w", err)
}
