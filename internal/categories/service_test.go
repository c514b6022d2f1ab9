package categories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"academy/internal/httpapi"
	"academy/pkg/apperrors"
)

func TestCreate_TagsDefaultToEmpty(t *testing.T) {
	svc := NewService(NewInMemoryStore())
	category, err := svc.Create(context.Background(), CreateInput{NameEn: "Programming", NameAr: "برمجة"})
	require.NoError(t, err)
	assert.NotNil(t, category.Tags)
	assert.Empty(t, category.Tags)
	assert.Equal(t, int64(1), category.ID)
}

func TestUpdate_ReplacesTags(t *testing.T) {
	svc := NewService(NewInMemoryStore())
	_, err := svc.Create(context.Background(), CreateInput{
		NameEn: "Programming", NameAr: "برمجة", Tags: []string{"go", "sql"},
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), "1", UpdateInput{Tags: []string{"go"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, []string(updated.Tags))
	assert.Equal(t, "Programming", updated.NameEn)
}

func TestList_Search(t *testing.T) {
	svc := NewService(NewInMemoryStore())
	for _, name := range []string{"Programming", "Design", "Data"} {
		_, err := svc.Create(context.Background(), CreateInput{NameEn: name, NameAr: name})
		require.NoError(t, err)
	}

	total, list, err := svc.List(context.Background(), "da", httpapi.Page{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, "Data", list[0].NameEn)
}

func TestGetAndExists(t *testing.T) {
	svc := NewService(NewInMemoryStore())
	_, err := svc.Create(context.Background(), CreateInput{NameEn: "Only", NameAr: "فقط"})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), "99")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
	assert.Equal(t, "Category with ID 99 not found", apperrors.MessageOf(err))

	ok, err := svc.Exists(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Exists(context.Background(), 99)
	require.NoError(t, err)
	assert.False(t, ok)
}
