package enrollments

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"academy/internal/httpapi"
	"academy/pkg/apperrors"
)

type fakeChecker struct {
	known map[uuid.UUID]bool
}

func (f *fakeChecker) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	return f.known[id], nil
}

func checkerOf(ids ...uuid.UUID) *fakeChecker {
	known := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		known[id] = true
	}
	return &fakeChecker{known: known}
}

func TestCreate_ChecksReferences(t *testing.T) {
	userID := uuid.New()
	courseID := uuid.New()
	svc := NewService(NewInMemoryStore(), checkerOf(userID), checkerOf(courseID))

	_, err := svc.Create(context.Background(), CreateInput{UserID: uuid.New(), CourseID: courseID})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
	assert.Equal(t, "User not found", apperrors.MessageOf(err))

	_, err = svc.Create(context.Background(), CreateInput{UserID: userID, CourseID: uuid.New()})
	require.Error(t, err)
	assert.Equal(t, "Course not found", apperrors.MessageOf(err))

	enrollment, err := svc.Create(context.Background(), CreateInput{UserID: userID, CourseID: courseID})
	require.NoError(t, err)
	assert.Equal(t, StatusActive, enrollment.Status)
	assert.NotEqual(t, uuid.Nil, enrollment.ID)
}

func TestCreate_DuplicateEnrollmentConflicts(t *testing.T) {
	userID := uuid.New()
	courseID := uuid.New()
	svc := NewService(NewInMemoryStore(), checkerOf(userID), checkerOf(courseID))

	_, err := svc.Create(context.Background(), CreateInput{UserID: userID, CourseID: courseID})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateInput{UserID: userID, CourseID: courseID})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict))
	assert.Equal(t, "User is already enrolled in this course", apperrors.MessageOf(err))
}

func TestCreate_ExplicitStatus(t *testing.T) {
	userID := uuid.New()
	courseID := uuid.New()
	svc := NewService(NewInMemoryStore(), checkerOf(userID), checkerOf(courseID))

	status := StatusCompleted
	enrollment, err := svc.Create(context.Background(), CreateInput{UserID: userID, CourseID: courseID, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, enrollment.Status)
}

func TestListByUser_NewestFirst(t *testing.T) {
	userID := uuid.New()
	courses := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	current := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	svc := NewService(NewInMemoryStore(), checkerOf(userID), checkerOf(courses...),
		WithClock(func() time.Time {
			current = current.Add(time.Minute)
			return current
		}))

	for _, courseID := range courses {
		_, err := svc.Create(context.Background(), CreateInput{UserID: userID, CourseID: courseID})
		require.NoError(t, err)
	}

	total, list, err := svc.ListByUser(context.Background(), userID.String(), httpapi.Page{Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, list, 2)
	assert.Equal(t, courses[2], list[0].CourseID)
	assert.Equal(t, courses[1], list[1].CourseID)
}

func TestSetStatusAndDelete(t *testing.T) {
	userID := uuid.New()
	courseID := uuid.New()
	svc := NewService(NewInMemoryStore(), checkerOf(userID), checkerOf(courseID))

	enrollment, err := svc.Create(context.Background(), CreateInput{UserID: userID, CourseID: courseID})
	require.NoError(t, err)

	updated, err := svc.SetStatus(context.Background(), enrollment.ID.String(), StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, updated.Status)

	require.NoError(t, svc.Delete(context.Background(), enrollment.ID.String()))
	err = svc.Delete(context.Background(), enrollment.ID.String())
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}
