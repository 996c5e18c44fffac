package author

import (
	"regexp"
	"strings"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var nameRegex = regexp.MustCompile(`^[a-zA-Z\s\-'.]+$`)

// CreateAuthorRequest is the payload for creating an author.
type CreateAuthorRequest struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Biography *string `json:"biography"`
}

func (r CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName,
			validation.Required.Error("first name is required"),
			validation.Length(1, 100).Error("first name must be between 1 and 100 characters"),
			validation.Match(nameRegex).Error("first name can only contain letters, spaces, hyphens, apostrophes, and periods"),
		),
		validation.Field(&r.LastName,
			validation.Required.Error("last name is required"),
			validation.Length(1, 100).Error("last name must be between 1 and 100 characters"),
			validation.Match(nameRegex).Error("last name can only contain letters, spaces, hyphens, apostrophes, and periods"),
		),
	)
}

// Normalize trims and title-cases the names before validation and storage.
func (r *CreateAuthorRequest) Normalize() {
	r.FirstName = TitleCase(strings.TrimSpace(r.FirstName))
	r.LastName = TitleCase(strings.TrimSpace(r.LastName))
}

// UpdateAuthorRequest is the payload for a partial author update. Nil fields
// are left untouched.
type UpdateAuthorRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Biography *string `json:"biography"`
}

func (r UpdateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName,
			validation.NilOrNotEmpty.Error("first name cannot be empty"),
			validation.Length(1, 100).Error("first name must be between 1 and 100 characters"),
			validation.Match(nameRegex).Error("first name can only contain letters, spaces, hyphens, apostrophes, and periods"),
		),
		validation.Field(&r.LastName,
			validation.NilOrNotEmpty.Error("last name cannot be empty"),
			validation.Length(1, 100).Error("last name must be between 1 and 100 characters"),
			validation.Match(nameRegex).Error("last name can only contain letters, spaces, hyphens, apostrophes, and periods"),
		),
	)
}

func (r *UpdateAuthorRequest) Normalize() {
	if r.FirstName != nil {
		v := TitleCase(strings.TrimSpace(*r.FirstName))
		r.FirstName = &v
	}
	if r.LastName != nil {
		v := TitleCase(strings.TrimSpace(*r.LastName))
		r.LastName = &v
	}
}

// TitleCase upper-cases the first letter of every word and lower-cases the
// rest, so "o'brien" becomes "O'Brien" and "van der berg" becomes
// "Van Der Berg".
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			b.WriteRune(r)
			prevLetter = false
		}
	}
	return b.String()
}
