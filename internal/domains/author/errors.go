package author

import (
	"errors"
	"net/http"
)

var (
	ErrAuthorNotFound   = errors.New("author not found")
	ErrDuplicateName    = errors.New("author with this name already exists")
	ErrAuthorReferenced = errors.New("author is referenced by existing books")
)

// ToHTTPStatus maps a domain error to its HTTP status code.
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrAuthorNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateName):
		return http.StatusConflict
	case errors.Is(err, ErrAuthorReferenced):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// ToErrorCode maps a domain error to the machine-readable code used in
// error responses.
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrAuthorNotFound):
		return "AUTHOR_NOT_FOUND"
	case errors.Is(err, ErrDuplicateName):
		return "AUTHOR_DUPLICATE"
	case errors.Is(err, ErrAuthorReferenced):
		return "AUTHOR_REFERENCED"
	default:
		return "INTERNAL_ERROR"
	}
}
