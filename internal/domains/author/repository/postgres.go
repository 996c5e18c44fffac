package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"bookshelf-backend/internal/domains/author"
	"bookshelf-backend/internal/shared/querybuilder"
	"bookshelf-backend/pkg/database"
)

const uniqueViolation = "23505"

// AuthorRepository persists authors. It runs over database.Querier so the
// same code serves pool-backed and transaction-scoped callers.
type AuthorRepository struct {
	db database.Querier
}

func NewAuthorRepository(db database.Querier) *AuthorRepository {
	return &AuthorRepository{db: db}
}

const authorColumns = "id, first_name, last_name, biography, created_at, updated_at"

func scanAuthor(row pgx.Row) (*author.Author, error) {
	var a author.Author
	err := row.Scan(&a.ID, &a.FirstName, &a.LastName, &a.Biography, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AuthorRepository) Create(ctx context.Context, a *author.Author) (*author.Author, error) {
	query := fmt.Sprintf(`
		INSERT INTO authors (first_name, last_name, biography)
		VALUES ($1, $2, $3)
		RETURNING %s`, authorColumns)

	created, err := scanAuthor(r.db.QueryRow(ctx, query, a.FirstName, a.LastName, a.Biography))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, author.ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to create author: %w", err)
	}
	return created, nil
}

func (r *AuthorRepository) GetByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	query := fmt.Sprintf("SELECT %s FROM authors WHERE id = $1", authorColumns)

	a, err := scanAuthor(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author: %w", err)
	}
	return a, nil
}

// GetByExactName looks an author up by the unique (first_name, last_name)
// pair. Used by the importer after a unique violation on create.
func (r *AuthorRepository) GetByExactName(ctx context.Context, firstName, lastName string) (*author.Author, error) {
	query := fmt.Sprintf("SELECT %s FROM authors WHERE first_name = $1 AND last_name = $2", authorColumns)

	a, err := scanAuthor(r.db.QueryRow(ctx, query, firstName, lastName))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by name: %w", err)
	}
	return a, nil
}

func (r *AuthorRepository) GetAll(ctx context.Context, limit, offset int) ([]*author.Author, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM authors").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count authors: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM authors
		ORDER BY last_name, first_name
		LIMIT $1 OFFSET $2`, authorColumns)

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list authors: %w", err)
	}
	defer rows.Close()

	authors, err := collectAuthors(rows)
	if err != nil {
		return nil, 0, err
	}
	return authors, total, nil
}

// Search matches the query as a case-insensitive substring of the author's
// full name.
func (r *AuthorRepository) Search(ctx context.Context, q string, limit, offset int) ([]*author.Author, int, error) {
	pattern := "%" + q + "%"

	var total int
	countQuery := "SELECT COUNT(*) FROM authors WHERE first_name || ' ' || last_name ILIKE $1"
	if err := r.db.QueryRow(ctx, countQuery, pattern).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count authors: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM authors
		WHERE first_name || ' ' || last_name ILIKE $1
		ORDER BY last_name, first_name
		LIMIT $2 OFFSET $3`, authorColumns)

	rows, err := r.db.Query(ctx, query, pattern, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search authors: %w", err)
	}
	defer rows.Close()

	authors, err := collectAuthors(rows)
	if err != nil {
		return nil, 0, err
	}
	return authors, total, nil
}

// SearchFirst returns the first full-name substring match, ordered by
// creation time so the importer reuses the oldest matching author.
func (r *AuthorRepository) SearchFirst(ctx context.Context, q string) (*author.Author, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM authors
		WHERE first_name || ' ' || last_name ILIKE $1
		ORDER BY created_at
		LIMIT 1`, authorColumns)

	a, err := scanAuthor(r.db.QueryRow(ctx, query, "%"+q+"%"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to search author: %w", err)
	}
	return a, nil
}

// Update applies the non-nil fields of req. When no field is set it returns
// the current row unchanged.
func (r *AuthorRepository) Update(ctx context.Context, id uuid.UUID, req *author.UpdateAuthorRequest) (*author.Author, error) {
	set := querybuilder.NewUpdateSet("first_name", "last_name", "biography")

	if req.FirstName != nil {
		if err := set.Set("first_name", *req.FirstName); err != nil {
			return nil, err
		}
	}
	if req.LastName != nil {
		if err := set.Set("last_name", *req.LastName); err != nil {
			return nil, err
		}
	}
	if req.Biography != nil {
		if err := set.Set("biography", *req.Biography); err != nil {
			return nil, err
		}
	}

	if set.Empty() {
		return r.GetByID(ctx, id)
	}

	query := fmt.Sprintf(`
		UPDATE authors
		SET %s, updated_at = NOW()
		WHERE id = $%d
		RETURNING %s`, set.Clause(), set.Next(), authorColumns)
	args := append(set.Args(), id)

	a, err := scanAuthor(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, author.ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to update author: %w", err)
	}
	return a, nil
}

// Delete removes the author. Referencing books are detached by the schema's
// ON DELETE SET NULL.
func (r *AuthorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM authors WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return author.ErrAuthorNotFound
	}
	return nil
}

func collectAuthors(rows pgx.Rows) ([]*author.Author, error) {
	authors := make([]*author.Author, 0)
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read authors: %w", err)
	}
	return authors, nil
}
