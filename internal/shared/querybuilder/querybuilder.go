// Package querybuilder assembles parameterized SQL fragments for
// variable-shape queries: partial updates and optional filters.
//
// Field and sort names pass through per-entity allow-lists before they
// reach SQL; caller-supplied values only ever travel through the
// positional argument list.
package querybuilder

import (
	"fmt"
	"strings"
)

// ErrFieldNotAllowed is returned when a field outside the allow-list is set.
var ErrFieldNotAllowed = fmt.Errorf("field is not updatable")

// UpdateSet collects "column = $n" assignments for allow-listed fields.
// Placeholders are numbered contiguously from 1 in call order.
type UpdateSet struct {
	allowed map[string]bool
	clauses []string
	args    []any
}

func NewUpdateSet(allowedFields ...string) *UpdateSet {
	allowed := make(map[string]bool, len(allowedFields))
	for _, f := range allowedFields {
		allowed[f] = true
	}
	return &UpdateSet{allowed: allowed}
}

// Set appends an assignment for field. Unknown fields are rejected so
// arbitrary column names can never reach the statement text.
func (u *UpdateSet) Set(field string, value any) error {
	if !u.allowed[field] {
		return fmt.Errorf("%w: %s", ErrFieldNotAllowed, field)
	}
	u.args = append(u.args, value)
	u.clauses = append(u.clauses, fmt.Sprintf("%s = $%d", field, len(u.args)))
	return nil
}

// Empty reports whether no field was set. Callers treat an empty update
// as a read-back of the current row rather than an error.
func (u *UpdateSet) Empty() bool {
	return len(u.clauses) == 0
}

// Clause returns the comma-joined assignment list, e.g. "title = $1, genre = $2".
func (u *UpdateSet) Clause() string {
	return strings.Join(u.clauses, ", ")
}

func (u *UpdateSet) Args() []any {
	return u.args
}

// Next returns the next free placeholder index (for the WHERE id = $n tail).
func (u *UpdateSet) Next() int {
	return len(u.args) + 1
}

// Where accumulates AND-ed filter predicates over a "1=1" anchor.
// The anchor exists so every branch can safely append "AND ...".
type Where struct {
	conds []string
	args  []any
}

func NewWhere() *Where {
	return &Where{conds: []string{"1=1"}}
}

// And appends one predicate. Every "$?" in expr is replaced with the same
// next placeholder index and exactly one argument is appended, so an
// expression may reference its argument more than once, e.g.
// "(a.first_name ILIKE $? OR a.last_name ILIKE $?)".
func (w *Where) And(expr string, arg any) {
	w.args = append(w.args, arg)
	placeholder := fmt.Sprintf("$%d", len(w.args))
	w.conds = append(w.conds, strings.ReplaceAll(expr, "$?", placeholder))
}

// Clause returns the AND-joined predicate list including the anchor.
func (w *Where) Clause() string {
	return strings.Join(w.conds, " AND ")
}

func (w *Where) Args() []any {
	return w.args
}

// Next returns the next free placeholder index (for LIMIT/OFFSET tails).
func (w *Where) Next() int {
	return len(w.args) + 1
}

// Count reports the number of predicates beyond the anchor.
func (w *Where) Count() int {
	return len(w.conds) - 1
}

// OrderBy maps a sort key through an allow-list to a real column reference.
// Unrecognized keys fall back to the default key instead of failing, and
// order normalizes to ASC unless explicitly "desc". Both guards keep
// caller input out of the ORDER BY text.
func OrderBy(allowed map[string]string, key, defaultKey, order string) string {
	column, ok := allowed[key]
	if !ok {
		column = allowed[defaultKey]
	}

	direction := "ASC"
	if strings.EqualFold(order, "desc") {
		direction = "DESC"
	}

	return column + " " + direction
}
