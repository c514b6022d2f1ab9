package articles

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"academy/internal/httpapi"
	"academy/pkg/apperrors"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func boolPtr(b bool) *bool { return &b }

func TestCreate_PublishedStampsPublishDate(t *testing.T) {
	stamp := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	svc := NewService(NewInMemoryStore(), WithClock(fixedClock(stamp)))

	draft, err := svc.Create(context.Background(), CreateInput{
		TitleEn: "Draft", TitleAr: "مسودة", ContentEn: "...", ContentAr: "...",
	})
	require.NoError(t, err)
	assert.False(t, draft.Published)
	assert.Nil(t, draft.PublishDate)

	published, err := svc.Create(context.Background(), CreateInput{
		TitleEn: "Live", TitleAr: "منشور", ContentEn: "...", ContentAr: "...",
		Published: boolPtr(true),
	})
	require.NoError(t, err)
	assert.True(t, published.Published)
	require.NotNil(t, published.PublishDate)
	assert.Equal(t, stamp, *published.PublishDate)
}

func TestSetPublished_TogglesStamp(t *testing.T) {
	stamp := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	svc := NewService(NewInMemoryStore(), WithClock(fixedClock(stamp)))

	article, err := svc.Create(context.Background(), CreateInput{
		TitleEn: "T", TitleAr: "ت", ContentEn: "c", ContentAr: "م",
	})
	require.NoError(t, err)
	id := "1"

	article, err = svc.SetPublished(context.Background(), id, true)
	require.NoError(t, err)
	assert.True(t, article.Published)
	require.NotNil(t, article.PublishDate)
	assert.Equal(t, stamp, *article.PublishDate)

	article, err = svc.SetPublished(context.Background(), id, false)
	require.NoError(t, err)
	assert.False(t, article.Published)
	assert.Nil(t, article.PublishDate)
}

func TestUpdate_PublishedFlagGoesThroughStamping(t *testing.T) {
	stamp := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	svc := NewService(NewInMemoryStore(), WithClock(fixedClock(stamp)))

	_, err := svc.Create(context.Background(), CreateInput{
		TitleEn: "T", TitleAr: "ت", ContentEn: "c", ContentAr: "م",
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), "1", UpdateInput{Published: boolPtr(true)})
	require.NoError(t, err)
	require.NotNil(t, updated.PublishDate)

	newTitle := "Renamed"
	updated, err = svc.Update(context.Background(), "1", UpdateInput{TitleEn: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.TitleEn)
	// Touching other fields leaves the publish state alone.
	assert.True(t, updated.Published)
	require.NotNil(t, updated.PublishDate)
}

func TestList_PublishedFirstByPublishDate(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	current := now
	svc := NewService(NewInMemoryStore(), WithClock(func() time.Time { return current }))

	mk := func(title string, published bool) {
		t.Helper()
		in := CreateInput{TitleEn: title, TitleAr: title, ContentEn: "c", ContentAr: "م"}
		if published {
			in.Published = boolPtr(true)
		}
		_, err := svc.Create(context.Background(), in)
		require.NoError(t, err)
		current = current.Add(time.Hour)
	}

	mk("old-published", true)
	mk("draft", false)
	mk("new-published", true)

	total, list, err := svc.List(context.Background(), "", nil, httpapi.Page{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, list, 3)
	assert.Equal(t, "new-published", list[0].TitleEn)
	assert.Equal(t, "old-published", list[1].TitleEn)
	assert.Equal(t, "draft", list[2].TitleEn)

	total, list, err = svc.List(context.Background(), "", boolPtr(true), httpapi.Page{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, list, 2)
	assert.Equal(t, "new-published", list[0].TitleEn)
}

func TestDelete_TwiceIsNotFound(t *testing.T) {
	svc := NewService(NewInMemoryStore())
	_, err := svc.Create(context.Background(), CreateInput{
		TitleEn: "T", TitleAr: "ت", ContentEn: "c", ContentAr: "م",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "1"))
	err = svc.Delete(context.Background(), "1")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
	assert.Equal(t, "Article with ID 1 not found", apperrors.MessageOf(err))
}
