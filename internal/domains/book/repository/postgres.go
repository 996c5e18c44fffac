package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"bookshelf-backend/internal/domains/author"
	"bookshelf-backend/internal/domains/book"
	"bookshelf-backend/internal/shared/querybuilder"
	"bookshelf-backend/pkg/cache"
	"bookshelf-backend/pkg/database"
	"bookshelf-backend/pkg/logger"
)

const bookCacheTTL = 5 * time.Minute

// bookSortFields maps API sort keys to SQL columns. Anything outside this
// map falls back to the default ordering.
var bookSortFields = map[string]string{
	"title":  "b.title",
	"year":   "b.published_year",
	"author": "a.last_name",
}

// BookRepository persists books. Detail reads go through the cache; every
// mutation invalidates the cached entry.
type BookRepository struct {
	db    database.Querier
	cache cache.Cache
}

func NewBookRepository(db database.Querier, c cache.Cache) *BookRepository {
	if c == nil {
		c = cache.NewNoop()
	}
	return &BookRepository{db: db, cache: c}
}

const bookSelect = `
	SELECT b.id, b.title, b.content, b.description, b.published_year, b.genre,
	       b.author_id, b.created_at, b.updated_at,
	       a.id, a.first_name, a.last_name, a.biography, a.created_at, a.updated_at
	FROM books b
	LEFT JOIN authors a ON a.id = b.author_id`

func cacheKey(id uuid.UUID) string {
	return "book:" + id.String()
}

func scanBook(row pgx.Row) (*book.Book, error) {
	var b book.Book
	var (
		authorID        *uuid.UUID
		firstName       *string
		lastName        *string
		biography       *string
		authorCreatedAt *time.Time
		authorUpdatedAt *time.Time
	)

	err := row.Scan(
		&b.ID, &b.Title, &b.Content, &b.Description, &b.PublishedYear, &b.Genre,
		&b.AuthorID, &b.CreatedAt, &b.UpdatedAt,
		&authorID, &firstName, &lastName, &biography, &authorCreatedAt, &authorUpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if authorID != nil {
		b.Author = &author.Author{
			ID:        *authorID,
			FirstName: *firstName,
			LastName:  *lastName,
			Biography: biography,
			CreatedAt: *authorCreatedAt,
			UpdatedAt: *authorUpdatedAt,
		}
	}
	return &b, nil
}

func (r *BookRepository) Create(ctx context.Context, b *book.Book) (*book.Book, error) {
	query := `
		INSERT INTO books (title, content, description, published_year, genre, author_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		b.Title, b.Content, b.Description, b.PublishedYear, b.Genre, b.AuthorID,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	// Re-read through the join so the response embeds the author.
	return r.fetchByID(ctx, b.ID)
}

func (r *BookRepository) GetByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	var cached book.Book
	hit, err := r.cache.Get(ctx, cacheKey(id), &cached)
	if err != nil {
		logger.Warn("book cache read failed", map[string]interface{}{"error": err.Error()})
	}
	if hit {
		return &cached, nil
	}

	b, err := r.fetchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, cacheKey(id), b, bookCacheTTL); err != nil {
		logger.Warn("book cache write failed", map[string]interface{}{"error": err.Error()})
	}
	return b, nil
}

func (r *BookRepository) fetchByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	b, err := scanBook(r.db.QueryRow(ctx, bookSelect+" WHERE b.id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	return b, nil
}

// List returns a filtered, sorted page of books plus the unpaginated total.
func (r *BookRepository) List(ctx context.Context, filter book.ListFilter, limit, offset int) ([]*book.Book, int, error) {
	where := querybuilder.NewWhere()

	if filter.Title != "" {
		where.And("b.title ILIKE $?", "%"+filter.Title+"%")
	}
	if filter.Author != "" {
		// One arg bound to both sides of the OR.
		where.And("(a.first_name ILIKE $? OR a.last_name ILIKE $?)", "%"+filter.Author+"%")
	}
	if filter.Genre != "" {
		where.And("b.genre = $?", filter.Genre)
	}
	if filter.YearFrom != nil {
		where.And("b.published_year >= $?", *filter.YearFrom)
	}
	if filter.YearTo != nil {
		where.And("b.published_year <= $?", *filter.YearTo)
	}

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM books b
		LEFT JOIN authors a ON a.id = b.author_id
		WHERE %s`, where.Clause())

	var total int
	if err := r.db.QueryRow(ctx, countQuery, where.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	orderBy := querybuilder.OrderBy(bookSortFields, filter.SortBy, "title", filter.SortOrder)

	query := fmt.Sprintf("%s WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d",
		bookSelect, where.Clause(), orderBy, where.Next(), where.Next()+1)
	args := append(where.Args(), limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books := make([]*book.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read books: %w", err)
	}

	return books, total, nil
}

// Update applies the non-nil fields of req. When no field is set it returns
// the current row unchanged.
func (r *BookRepository) Update(ctx context.Context, id uuid.UUID, req *book.UpdateBookRequest) (*book.Book, error) {
	set := querybuilder.NewUpdateSet("title", "content", "description", "published_year", "genre", "author_id")

	if req.Title != nil {
		if err := set.Set("title", *req.Title); err != nil {
			return nil, err
		}
	}
	if req.Content != nil {
		if err := set.Set("content", *req.Content); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		if err := set.Set("description", *req.Description); err != nil {
			return nil, err
		}
	}
	if req.PublishedYear != nil {
		if err := set.Set("published_year", *req.PublishedYear); err != nil {
			return nil, err
		}
	}
	if req.Genre != nil {
		if err := set.Set("genre", *req.Genre); err != nil {
			return nil, err
		}
	}
	if req.AuthorID != nil {
		if err := set.Set("author_id", *req.AuthorID); err != nil {
			return nil, err
		}
	}

	if set.Empty() {
		return r.fetchByID(ctx, id)
	}

	query := fmt.Sprintf(`
		UPDATE books
		SET %s, updated_at = NOW()
		WHERE id = $%d
		RETURNING id`, set.Clause(), set.Next())
	args := append(set.Args(), id)

	var updatedID uuid.UUID
	if err := r.db.QueryRow(ctx, query, args...).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to update book: %w", err)
	}

	r.invalidate(ctx, id)
	return r.fetchByID(ctx, id)
}

func (r *BookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM books WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return book.ErrBookNotFound
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *BookRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, cacheKey(id)); err != nil {
		logger.Warn("book cache invalidation failed", map[string]interface{}{"error": err.Error()})
	}
}
