package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookshelf-backend/internal/config"
	"bookshelf-backend/internal/domains/author"
	authorrepo "bookshelf-backend/internal/domains/author/repository"
	"bookshelf-backend/internal/domains/book"
	bookrepo "bookshelf-backend/internal/domains/book/repository"
	"bookshelf-backend/pkg/cache"
	"bookshelf-backend/pkg/database"
	"bookshelf-backend/pkg/logger"
)

const defaultContent = "No content provided"

// repoSet bundles the row-scoped repositories used during an import.
type repoSet struct {
	books   BookRepository
	authors AuthorRepository
}

// ImportService reconciles bulk import files into books, creating authors
// on demand. The whole batch runs in one transaction; each row runs in a
// nested transaction so a failed row cannot poison the rest.
type ImportService struct {
	pool *pgxpool.Pool
	cfg  config.ImportConfig

	// seams, replaced in tests
	runBatch func(ctx context.Context, fn func(q database.Querier) error) error
	runRow   func(ctx context.Context, q database.Querier, fn func(q database.Querier) error) error
	newRepos func(q database.Querier) repoSet
}

func NewImportService(pool *pgxpool.Pool, cfg config.ImportConfig) *ImportService {
	s := &ImportService{
		pool:     pool,
		cfg:      cfg,
		newRepos: newTransactionalRepos,
	}
	s.runBatch = s.runInTransaction
	s.runRow = runInNestedTransaction
	return s
}

// newTransactionalRepos builds row-scoped repositories over the savepoint
// querier. The book repository runs cacheless here so uncommitted rows
// never reach the cache.
func newTransactionalRepos(q database.Querier) repoSet {
	return repoSet{
		books:   bookrepo.NewBookRepository(q, cache.NewNoop()),
		authors: authorrepo.NewAuthorRepository(q),
	}
}

func (s *ImportService) runInTransaction(ctx context.Context, fn func(q database.Querier) error) error {
	return database.WithTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(tx)
	})
}

// runInNestedTransaction wraps fn in a savepoint so its failure rolls back
// only the current row.
func runInNestedTransaction(ctx context.Context, q database.Querier, fn func(q database.Querier) error) error {
	outer, ok := q.(pgx.Tx)
	if !ok {
		return fmt.Errorf("import rows must run inside a transaction")
	}

	tx, err := outer.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin nested transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

// Import parses the uploaded file and reconciles its rows. The returned
// report is per-row: failed rows are recorded, valid rows still land.
func (s *ImportService) Import(ctx context.Context, filename, contentType string, data []byte) (*book.ImportReport, error) {
	rows, err := s.parse(filename, contentType, data)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, book.ErrEmptyImportFile
	}
	if s.cfg.MaxRows > 0 && len(rows) > s.cfg.MaxRows {
		return nil, book.ErrTooManyRows
	}

	report := &book.ImportReport{Errors: []string{}}

	err = s.runBatch(ctx, func(q database.Querier) error {
		for i, row := range rows {
			rowErr := s.runRow(ctx, q, func(rowQ database.Querier) error {
				return s.importRow(ctx, s.newRepos(rowQ), row)
			})
			if rowErr != nil {
				report.ErrorCount++
				report.Errors = append(report.Errors, fmt.Sprintf("Row %d: %s", i+1, rowErr.Error()))
				continue
			}
			report.SuccessCount++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("bulk import finished", map[string]interface{}{
		"success_count": report.SuccessCount,
		"error_count":   report.ErrorCount,
	})
	return report, nil
}

func (s *ImportService) parse(filename, contentType string, data []byte) ([]book.ImportRow, error) {
	switch {
	case s.cfg.Allowed("application/json") && (contentType == "application/json" || strings.HasSuffix(filename, ".json")):
		return book.UnmarshalImportRows(data)
	case s.cfg.Allowed("text/csv") && (contentType == "text/csv" || strings.HasSuffix(filename, ".csv")):
		return parseCSVRows(data)
	default:
		return nil, book.ErrUnsupportedFile
	}
}

// parseCSVRows reads a header-keyed CSV into import rows. Unknown columns
// are ignored; missing ones leave the zero value.
func parseCSVRows(data []byte) ([]book.ImportRow, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV import payload: %w", err)
	}
	if len(records) < 2 {
		return nil, nil
	}

	header := records[0]
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}

	field := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	rows := make([]book.ImportRow, 0, len(records)-1)
	for _, record := range records[1:] {
		year, _ := strconv.Atoi(strings.TrimSpace(field(record, "published_year")))

		var description *string
		if d := field(record, "description"); d != "" {
			description = &d
		}

		rows = append(rows, book.ImportRow{
			Title:         field(record, "title"),
			Content:       field(record, "content"),
			Description:   description,
			PublishedYear: book.FlexInt(year),
			Genre:         field(record, "genre"),
			AuthorID:      field(record, "author_id"),
			AuthorName:    field(record, "author"),
		})
	}
	return rows, nil
}

// importRow validates one row, resolves its author, and inserts the book.
func (s *ImportService) importRow(ctx context.Context, repos repoSet, row book.ImportRow) error {
	content := strings.TrimSpace(row.Content)
	if content == "" {
		content = defaultContent
	}

	req := &book.CreateBookRequest{
		Title:         row.Title,
		Content:       content,
		Description:   row.Description,
		PublishedYear: int(row.PublishedYear),
		Genre:         row.Genre,
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return err
	}

	authorID, err := s.resolveAuthor(ctx, repos.authors, row)
	if err != nil {
		return err
	}
	req.AuthorID = authorID

	b := &book.Book{
		Title:         req.Title,
		Content:       req.Content,
		Description:   req.Description,
		PublishedYear: req.PublishedYear,
		Genre:         req.Genre,
		AuthorID:      req.AuthorID,
	}
	if _, err := repos.books.Create(ctx, b); err != nil {
		return err
	}
	return nil
}

// resolveAuthor turns the row's author reference into an author id. An
// explicit author_id must point at an existing author; otherwise the author
// name is matched by substring against existing authors, reusing the first
// match, and created when nothing matches. Rows carrying neither field
// resolve to nil and the book imports without an author.
func (s *ImportService) resolveAuthor(ctx context.Context, authors AuthorRepository, row book.ImportRow) (*uuid.UUID, error) {
	if raw := strings.TrimSpace(row.AuthorID); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid author_id: %s", raw)
		}
		if _, err := authors.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return &id, nil
	}

	name := strings.TrimSpace(row.AuthorName)
	if name == "" {
		// no author reference at all, the book imports detached
		return nil, nil
	}

	if existing, err := authors.SearchFirst(ctx, name); err == nil {
		return &existing.ID, nil
	} else if !errors.Is(err, author.ErrAuthorNotFound) {
		return nil, err
	}

	firstName, lastName := SplitAuthorName(name)

	created, err := authors.Create(ctx, &author.Author{FirstName: firstName, LastName: lastName})
	if err == nil {
		return &created.ID, nil
	}
	if !errors.Is(err, author.ErrDuplicateName) {
		return nil, err
	}

	// Lost the creation race or matched an existing pair: reuse it.
	existing, err := authors.GetByExactName(ctx, firstName, lastName)
	if err != nil {
		return nil, err
	}
	return &existing.ID, nil
}

// SplitAuthorName derives (first, last) from a display name: the last
// whitespace token is the last name, everything before it the first name.
// A single token keeps "Author" as last name; an empty name becomes
// "Unknown Author".
func SplitAuthorName(name string) (string, string) {
	tokens := strings.Fields(name)
	switch len(tokens) {
	case 0:
		return "Unknown", "Author"
	case 1:
		return author.TitleCase(tokens[0]), "Author"
	default:
		first := strings.Join(tokens[:len(tokens)-1], " ")
		return author.TitleCase(first), author.TitleCase(tokens[len(tokens)-1])
	}
}
