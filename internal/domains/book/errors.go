package book

import (
	"errors"
	"net/http"

	"bookshelf-backend/internal/domains/author"
)

var (
	ErrBookNotFound    = errors.New("book not found")
	ErrInvalidGenre    = errors.New("invalid genre")
	ErrUnsupportedFile = errors.New("unsupported import file type")
	ErrEmptyImportFile = errors.New("import file contains no rows")
	ErrTooManyRows     = errors.New("import file exceeds the row limit")
)

// ToHTTPStatus maps a domain error to its HTTP status code. Author errors
// pass through because book operations validate author references.
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrBookNotFound):
		return http.StatusNotFound
	case errors.Is(err, author.ErrAuthorNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidGenre):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrUnsupportedFile):
		return http.StatusBadRequest
	case errors.Is(err, ErrEmptyImportFile):
		return http.StatusBadRequest
	case errors.Is(err, ErrTooManyRows):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ToErrorCode maps a domain error to its machine-readable response code.
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrBookNotFound):
		return "BOOK_NOT_FOUND"
	case errors.Is(err, author.ErrAuthorNotFound):
		return "AUTHOR_NOT_FOUND"
	case errors.Is(err, ErrInvalidGenre):
		return "INVALID_GENRE"
	case errors.Is(err, ErrUnsupportedFile):
		return "UNSUPPORTED_FILE_TYPE"
	case errors.Is(err, ErrEmptyImportFile):
		return "EMPTY_IMPORT_FILE"
	case errors.Is(err, ErrTooManyRows):
		return "IMPORT_TOO_LARGE"
	default:
		return "INTERNAL_ERROR"
	}
}
