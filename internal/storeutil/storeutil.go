// Package storeutil holds the filtering helpers shared by every entity
// store: a SQL predicate builder for the postgres stores and a substring
// matcher for the in-memory ones. Both implement the same semantics so a
// service behaves identically against either backend.
package storeutil

import (
	"fmt"
	"strings"
)

// Conditions accumulates WHERE predicates with positional placeholders.
// The zero value is ready to use.
type Conditions struct {
	clauses []string
	args    []any
}

// Add appends one predicate. clause must contain a single %d verb that is
// replaced with the next placeholder ordinal, e.g. "category_id = $%d".
func (c *Conditions) Add(clause string, arg any) {
	c.args = append(c.args, arg)
	c.clauses = append(c.clauses, fmt.Sprintf(clause, len(c.args)))
}

// Search appends a case-insensitive substring predicate across columns,
// OR-joined. Empty terms add nothing.
func (c *Conditions) Search(term string, columns ...string) {
	if term == "" || len(columns) == 0 {
		return
	}
	c.args = append(c.args, "%"+escapeLike(term)+"%")
	placeholder := len(c.args)
	parts := make([]string, 0, len(columns))
	for _, col := range columns {
		parts = append(parts, fmt.Sprintf("%s ILIKE $%d", col, placeholder))
	}
	c.clauses = append(c.clauses, "("+strings.Join(parts, " OR ")+")")
}

// Where renders the accumulated predicates as a WHERE clause, or "" when
// none were added.
func (c *Conditions) Where() string {
	if len(c.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.clauses, " AND ")
}

// Args returns the accumulated placeholder values in order.
func (c *Conditions) Args() []any { return c.args }

// NextArg appends a value outside of a predicate (LIMIT/OFFSET) and returns
// its placeholder ordinal.
func (c *Conditions) NextArg(arg any) int {
	c.args = append(c.args, arg)
	return len(c.args)
}

func escapeLike(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(term)
}

// Paginate applies an offset/limit window to an already-filtered slice.
// Out-of-range offsets yield an empty, non-nil slice so JSON encodes [].
func Paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// MatchSubstring reports whether term appears, case-insensitively, in any of
// the given fields. Empty terms match everything, mirroring the SQL side
// where an empty search adds no predicate.
func MatchSubstring(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}
