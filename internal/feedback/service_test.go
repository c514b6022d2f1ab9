package feedback

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"academy/internal/httpapi"
	"academy/pkg/apperrors"
)

type fakeCourses struct {
	known map[uuid.UUID]bool
}

func (f *fakeCourses) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	return f.known[id], nil
}

func newTestService(t *testing.T, courseIDs ...uuid.UUID) *Service {
	t.Helper()
	known := make(map[uuid.UUID]bool, len(courseIDs))
	for _, id := range courseIDs {
		known[id] = true
	}
	return NewService(NewInMemoryStore(), &fakeCourses{known: known})
}

func TestCreate_RequiresExistingCourse(t *testing.T) {
	courseID := uuid.New()
	svc := newTestService(t, courseID)

	missing := uuid.New()
	_, err := svc.Create(context.Background(), CreateInput{CourseID: missing, Rating: 4})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
	assert.Equal(t, "Course with ID "+missing.String()+" not found", apperrors.MessageOf(err))

	fb, err := svc.Create(context.Background(), CreateInput{CourseID: courseID, Rating: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, fb.Rating)
	assert.Equal(t, int64(1), fb.ID)
}

func TestListByCourseAndUser(t *testing.T) {
	courseA := uuid.New()
	courseB := uuid.New()
	svc := newTestService(t, courseA, courseB)

	alice := uuid.New()
	bob := uuid.New()
	for _, fb := range []CreateInput{
		{CourseID: courseA, Rating: 5, UserID: &alice},
		{CourseID: courseA, Rating: 3, UserID: &bob},
		{CourseID: courseB, Rating: 4, UserID: &alice},
	} {
		_, err := svc.Create(context.Background(), fb)
		require.NoError(t, err)
	}

	total, list, err := svc.ListByCourse(context.Background(), courseA.String(), httpapi.Page{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, list, 2)
	// Newest first.
	assert.Equal(t, 3, list[0].Rating)

	total, list, err = svc.ListByUser(context.Background(), alice.String(), httpapi.Page{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, list, 2)
	assert.Equal(t, courseB, list[0].CourseID)
}

func TestUpdate_PartialFields(t *testing.T) {
	courseID := uuid.New()
	svc := newTestService(t, courseID)

	comment := "great course"
	_, err := svc.Create(context.Background(), CreateInput{CourseID: courseID, Rating: 2, CommentEn: &comment})
	require.NoError(t, err)

	rating := 5
	updated, err := svc.Update(context.Background(), "1", UpdateInput{Rating: &rating})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)
	require.NotNil(t, updated.CommentEn)
	assert.Equal(t, "great course", *updated.CommentEn)
}

func TestDelete_TwiceIsNotFound(t *testing.T) {
	courseID := uuid.New()
	svc := newTestService(t, courseID)

	_, err := svc.Create(context.Background(), CreateInput{CourseID: courseID, Rating: 1})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "1"))
	err = svc.Delete(context.Background(), "1")
	require.Error(t, err)
	assert.Equal(t, "Feedback with ID 1 not found", apperrors.MessageOf(err))
}
