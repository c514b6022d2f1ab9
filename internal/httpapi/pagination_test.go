package httpapi

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		page    int
		perPage int
	}{
		{"defaults", "", 1, 10},
		{"explicit", "page=3&perPage=25", 3, 25},
		{"zero page degrades", "page=0&perPage=10", 1, 10},
		{"negative values degrade", "page=-2&perPage=-5", 1, 10},
		{"non-numeric degrades", "page=abc&perPage=xyz", 1, 10},
		{"perPage clamped to ceiling", "page=1&perPage=500", 1, 100},
		{"fractions degrade", "page=1.5&perPage=2.5", 1, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			assert.NoError(t, err)
			p := NormalizePage(q)
			assert.Equal(t, tt.page, p.Page)
			assert.Equal(t, tt.perPage, p.PerPage)
		})
	}
}

func TestPageOffset(t *testing.T) {
	assert.Equal(t, 0, Page{Page: 1, PerPage: 10}.Offset())
	assert.Equal(t, 40, Page{Page: 3, PerPage: 20}.Offset())
}
