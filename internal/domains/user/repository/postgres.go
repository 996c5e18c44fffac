package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"bookshelf-backend/internal/domains/user"
	"bookshelf-backend/internal/shared/querybuilder"
	"bookshelf-backend/pkg/database"
)

const uniqueViolation = "23505"

// UserRepository persists accounts over database.Querier.
type UserRepository struct {
	db database.Querier
}

func NewUserRepository(db database.Querier) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = "id, username, email, full_name, hashed_password, is_active, created_at, updated_at"

func scanUser(row pgx.Row) (*user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FullName, &u.HashedPassword,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) (*user.User, error) {
	query := fmt.Sprintf(`
		INSERT INTO users (username, email, full_name, hashed_password)
		VALUES ($1, $2, $3, $4)
		RETURNING %s`, userColumns)

	created, err := scanUser(r.db.QueryRow(ctx, query, u.Username, u.Email, u.FullName, u.HashedPassword))
	if err != nil {
		return nil, mapUniqueViolation(err, "failed to create user")
	}
	return created, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE id = $1", userColumns)

	u, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE username = $1", userColumns)

	u, err := scanUser(r.db.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return u, nil
}

// Update applies the non-nil profile fields. When no field is set it returns
// the current row unchanged.
func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, req *user.UpdateProfileRequest) (*user.User, error) {
	set := querybuilder.NewUpdateSet("email", "full_name", "is_active")

	if req.Email != nil {
		if err := set.Set("email", *req.Email); err != nil {
			return nil, err
		}
	}
	if req.FullName != nil {
		if err := set.Set("full_name", *req.FullName); err != nil {
			return nil, err
		}
	}

	if set.Empty() {
		return r.GetByID(ctx, id)
	}

	query := fmt.Sprintf(`
		UPDATE users
		SET %s, updated_at = NOW()
		WHERE id = $%d
		RETURNING %s`, set.Clause(), set.Next(), userColumns)
	args := append(set.Args(), id)

	u, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, mapUniqueViolation(err, "failed to update user")
	}
	return u, nil
}

// Deactivate soft-deletes the account by clearing is_active.
func (r *UserRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		"UPDATE users SET is_active = FALSE, updated_at = NOW() WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// mapUniqueViolation resolves which unique constraint fired so the caller
// sees a username or email conflict instead of a bare database error.
func mapUniqueViolation(err error, context string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		if strings.Contains(pgErr.ConstraintName, "email") {
			return user.ErrDuplicateEmail
		}
		return user.ErrDuplicateUsername
	}
	return fmt.Errorf("%s: %w", context, err)
}
