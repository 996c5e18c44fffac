package book

import (
	"errors"
	"strings"
	"time"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

func hasAlphanumeric(value interface{}) error {
	s, _ := value.(string)
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return nil
		}
	}
	return errors.New("must contain at least one letter or digit")
}

func validGenre(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if !ValidGenre(s) {
		return errors.New("must be one of: " + strings.Join(Genres, ", "))
	}
	return nil
}

func validYear(value interface{}) error {
	var year int
	switch v := value.(type) {
	case int:
		year = v
	case *int:
		if v == nil {
			return nil
		}
		year = *v
	default:
		return errors.New("must be a number")
	}
	if year < MinPublishedYear || year > time.Now().Year() {
		return errors.New("must be between 1800 and the current year")
	}
	return nil
}

// CreateBookRequest is the payload for creating a book.
type CreateBookRequest struct {
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	Description   *string    `json:"description"`
	PublishedYear int        `json:"published_year"`
	Genre         string     `json:"genre"`
	AuthorID      *uuid.UUID `json:"author_id"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 200).Error("title must be between 1 and 200 characters"),
			validation.By(hasAlphanumeric),
		),
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
			validation.Length(10, 2000).Error("content must be between 10 and 2000 characters"),
		),
		validation.Field(&r.PublishedYear,
			validation.Required.Error("published year is required"),
			validation.By(validYear),
		),
		validation.Field(&r.Genre,
			validation.Required.Error("genre is required"),
			validation.By(validGenre),
		),
	)
}

// Normalize trims free-text fields before validation and storage.
func (r *CreateBookRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Content = strings.TrimSpace(r.Content)
	r.Genre = strings.TrimSpace(r.Genre)
}

// UpdateBookRequest is the payload for a partial book update. Nil fields are
// left untouched.
type UpdateBookRequest struct {
	Title         *string    `json:"title"`
	Content       *string    `json:"content"`
	Description   *string    `json:"description"`
	PublishedYear *int       `json:"published_year"`
	Genre         *string    `json:"genre"`
	AuthorID      *uuid.UUID `json:"author_id"`
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.NilOrNotEmpty.Error("title cannot be empty"),
			validation.Length(1, 200).Error("title must be between 1 and 200 characters"),
			validation.By(func(v interface{}) error {
				if p, _ := v.(*string); p != nil {
					return hasAlphanumeric(*p)
				}
				return nil
			}),
		),
		validation.Field(&r.Content,
			validation.NilOrNotEmpty.Error("content cannot be empty"),
			validation.Length(10, 2000).Error("content must be between 10 and 2000 characters"),
		),
		validation.Field(&r.PublishedYear, validation.By(validYear)),
		validation.Field(&r.Genre,
			validation.By(func(v interface{}) error {
				if p, _ := v.(*string); p != nil {
					if *p == "" || !ValidGenre(*p) {
						return errors.New("must be one of: " + strings.Join(Genres, ", "))
					}
				}
				return nil
			}),
		),
	)
}

func (r *UpdateBookRequest) Normalize() {
	if r.Title != nil {
		v := strings.TrimSpace(*r.Title)
		r.Title = &v
	}
	if r.Content != nil {
		v := strings.TrimSpace(*r.Content)
		r.Content = &v
	}
	if r.Genre != nil {
		v := strings.TrimSpace(*r.Genre)
		r.Genre = &v
	}
}

// ListFilter carries the optional filters and sorting for book listings.
type ListFilter struct {
	Title     string
	Author    string
	Genre     string
	YearFrom  *int
	YearTo    *int
	SortBy    string
	SortOrder string
}
