package book

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"bookshelf-backend/internal/domains/author"
)

// MinPublishedYear is the earliest accepted publication year.
const MinPublishedYear = 1800

// Genres is the closed set of accepted genre values.
var Genres = []string{
	"Fiction",
	"Non-Fiction",
	"Mystery",
	"Fantasy",
	"Biography",
	"Science Fiction",
	"Romance",
	"Thriller",
}

// ValidGenre reports whether g is one of the accepted genres.
func ValidGenre(g string) bool {
	for _, genre := range Genres {
		if g == genre {
			return true
		}
	}
	return false
}

// Book is the persisted book entity. Author is populated on reads via a
// LEFT JOIN and stays nil for detached books.
type Book struct {
	ID            uuid.UUID      `json:"id"`
	Title         string         `json:"title"`
	Content       string         `json:"content"`
	Description   *string        `json:"description,omitempty"`
	PublishedYear int            `json:"published_year"`
	Genre         string         `json:"genre"`
	AuthorID      *uuid.UUID     `json:"author_id"`
	Author        *author.Author `json:"author"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// FlexInt accepts a JSON number or a numeric string. Import files produced
// by spreadsheet exports quote year columns inconsistently. Unparseable
// values become zero so the row fails validation instead of poisoning the
// whole payload.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "null" || s == "" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		*f = 0
		return nil
	}
	*f = FlexInt(n)
	return nil
}

// ImportRow is one record of an import file before reconciliation. It is
// never persisted directly.
type ImportRow struct {
	Title         string  `json:"title"`
	Content       string  `json:"content"`
	Description   *string `json:"description"`
	PublishedYear FlexInt `json:"published_year"`
	Genre         string  `json:"genre"`
	AuthorID      string  `json:"author_id"`
	AuthorName    string  `json:"author"`
}

// ImportReport summarizes a bulk import run.
type ImportReport struct {
	SuccessCount int      `json:"success_count"`
	ErrorCount   int      `json:"error_count"`
	Errors       []string `json:"errors"`
}

// UnmarshalImportRows parses an import payload that is either a bare JSON
// array of rows or an object wrapping them under "books".
func UnmarshalImportRows(data []byte) ([]ImportRow, error) {
	var rows []ImportRow
	if err := json.Unmarshal(data, &rows); err == nil {
		return rows, nil
	}

	var wrapped struct {
		Books []ImportRow `json:"books"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("invalid JSON import payload: %w", err)
	}
	return wrapped.Books, nil
}
