package httpapi

import (
	"net/url"
	"strconv"
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

// Page holds normalized pagination parameters. Values are always valid:
// page >= 1 and 1 <= perPage <= 100.
type Page struct {
	Page    int
	PerPage int
}

// Offset is the row offset for a backing store query.
func (p Page) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// NormalizePage derives pagination from raw query input. It never fails:
// absent, non-numeric, zero, or negative values degrade to the defaults, and
// perPage is silently clamped to the ceiling.
func NormalizePage(q url.Values) Page {
	page := atoiOr(q.Get("page"), 1)
	if page < 1 {
		page = 1
	}
	perPage := atoiOr(q.Get("perPage"), defaultPerPage)
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return Page{Page: page, PerPage: perPage}
}

func atoiOr(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
