package courses

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"academy/internal/httpapi"
	"academy/pkg/apperrors"
)

func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool        { return &b }

func seedCourses(t *testing.T, svc *Service) (trainerID uuid.UUID) {
	t.Helper()
	trainerID = uuid.New()
	category := int64(7)

	for _, in := range []CreateInput{
		{NameEn: "Go Basics", NameAr: "أساسيات جو", TrainerID: &trainerID, CategoryID: &category, Price: floatPtr(50), Published: boolPtr(true)},
		{NameEn: "Advanced Go", NameAr: "جو متقدم", TrainerID: &trainerID, Price: floatPtr(150), Published: boolPtr(true)},
		{NameEn: "Intro to SQL", NameAr: "مقدمة", Price: floatPtr(80)},
	} {
		_, err := svc.Create(context.Background(), in)
		require.NoError(t, err)
	}
	return trainerID
}

func TestCreate_SyllabusDefaultsToEmpty(t *testing.T) {
	svc := NewService(NewInMemoryStore())
	course, err := svc.Create(context.Background(), CreateInput{NameEn: "N", NameAr: "ن"})
	require.NoError(t, err)
	assert.NotNil(t, course.SyllabusEn)
	assert.Empty(t, course.SyllabusEn)
	assert.False(t, course.Published)
}

func TestList_Filters(t *testing.T) {
	svc := NewService(NewInMemoryStore())
	trainerID := seedCourses(t, svc)
	page := httpapi.Page{Page: 1, PerPage: 10}

	total, _, err := svc.List(context.Background(), ListQuery{TrainerID: &trainerID}, page)
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	total, _, err = svc.List(context.Background(), ListQuery{Published: boolPtr(false)}, page)
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	total, list, err := svc.List(context.Background(), ListQuery{MinPrice: floatPtr(60), MaxPrice: floatPtr(100)}, page)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, "Intro to SQL", list[0].NameEn)

	total, _, err = svc.List(context.Background(), ListQuery{Search: "go"}, page)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestGet_InvalidIDIsNotFound(t *testing.T) {
	svc := NewService(NewInMemoryStore())
	_, err := svc.Get(context.Background(), "not-a-uuid")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestUpdate_PartialFields(t *testing.T) {
	svc := NewService(NewInMemoryStore())
	course, err := svc.Create(context.Background(), CreateInput{NameEn: "Old", NameAr: "قديم", Price: floatPtr(10)})
	require.NoError(t, err)

	name := "New"
	updated, err := svc.Update(context.Background(), course.ID.String(), UpdateInput{
		NameEn:     &name,
		SyllabusEn: []string{"week 1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.NameEn)
	assert.Equal(t, "قديم", updated.NameAr)
	assert.Equal(t, []string{"week 1"}, []string(updated.SyllabusEn))
	require.NotNil(t, updated.Price)
	assert.Equal(t, 10.0, *updated.Price)
}
