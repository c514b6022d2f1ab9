package storeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConditions_Empty(t *testing.T) {
	var c Conditions
	assert.Empty(t, c.Where())
	assert.Empty(t, c.Args())
}

func TestConditions_AddAndSearch(t *testing.T) {
	var c Conditions
	c.Add("published = $%d", true)
	c.Search("go", "name_en", "name_ar")
	c.Add("price >= $%d", 10.0)

	assert.Equal(t,
		" WHERE published = $1 AND (name_en ILIKE $2 OR name_ar ILIKE $2) AND price >= $3",
		c.Where())
	assert.Equal(t, []any{true, "%go%", 10.0}, c.Args())
}

func TestConditions_SearchEscapesWildcards(t *testing.T) {
	var c Conditions
	c.Search("50%_off", "title")
	assert.Equal(t, []any{`%50\%\_off%`}, c.Args())
}

func TestConditions_SearchEmptyTermIsNoop(t *testing.T) {
	var c Conditions
	c.Search("", "title")
	assert.Empty(t, c.Where())
}

func TestConditions_NextArg(t *testing.T) {
	var c Conditions
	c.Add("active = $%d", true)
	n := c.NextArg(20)
	assert.Equal(t, 2, n)
	assert.Equal(t, []any{true, 20}, c.Args())
}

func TestPaginate(t *testing.T) {
	items := []int{5, 4, 3, 2, 1}
	assert.Equal(t, []int{5, 4}, Paginate(items, 0, 2))
	assert.Equal(t, []int{3, 2}, Paginate(items, 2, 2))
	assert.Equal(t, []int{1}, Paginate(items, 4, 10))
	assert.Equal(t, []int{}, Paginate(items, 9, 2))
}

func TestMatchSubstring(t *testing.T) {
	assert.True(t, MatchSubstring("", "anything"))
	assert.True(t, MatchSubstring("GO", "Learning Go", "other"))
	assert.True(t, MatchSubstring("go", "", "Go Basics"))
	assert.False(t, MatchSubstring("rust", "Learning Go"))
}
