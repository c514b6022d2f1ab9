package feedback

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"academy/internal/httpapi"
	"academy/internal/platform/metrics"
	"academy/internal/users"
	"academy/internal/validation"
)

// stubAuth plays both pipeline collaborators: any token named after a role
// verifies as a caller holding that role.
type stubAuth struct{}

func (stubAuth) Verify(_ context.Context, token string) (httpapi.Identity, error) {
	return httpapi.Identity{UserID: token}, nil
}

func (stubAuth) RoleNameByUserID(_ context.Context, userID string) (string, error) {
	return userID, nil
}

func newTestRouter(t *testing.T, courseIDs ...uuid.UUID) chi.Router {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	pipe := httpapi.NewPipeline(stubAuth{}, httpapi.NewAuthorizer(stubAuth{}), validation.NewRegistry(), logger)
	m := metrics.New(prometheus.NewRegistry())

	r := chi.NewRouter()
	NewHandler(newTestService(t, courseIDs...), pipe, logger, m).Register(r)
	return r
}

func do(t *testing.T, r chi.Router, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestFeedbackHandler_CreateRequiresAuthentication(t *testing.T) {
	courseID := uuid.New()
	r := newTestRouter(t, courseID)
	body := `{"courseId":"` + courseID.String() + `","rating":5}`

	rec := do(t, r, http.MethodPost, "/feedback", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var env httpapi.Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	assert.Equal(t, "Invalid or missing token", env.Message)

	rec = do(t, r, http.MethodPost, "/feedback", users.RoleUser, body)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var created Feedback
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, 5, created.Rating)
	assert.Equal(t, courseID, created.CourseID)
}

func TestFeedbackHandler_GetByID(t *testing.T) {
	courseID := uuid.New()
	r := newTestRouter(t, courseID)

	rec := do(t, r, http.MethodPost, "/feedback", users.RoleUser, `{"courseId":"`+courseID.String()+`","rating":4,"commentEn":"Solid"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created Feedback
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))

	rec = do(t, r, http.MethodGet, "/feedback/1", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var got Feedback
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, 4, got.Rating)

	rec = do(t, r, http.MethodGet, "/feedback/99", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var env httpapi.Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	assert.Equal(t, "Feedback with ID 99 not found", env.Message)
}

func TestFeedbackHandler_UpdateViaPatchAndPut(t *testing.T) {
	courseID := uuid.New()
	r := newTestRouter(t, courseID)

	rec := do(t, r, http.MethodPost, "/feedback", users.RoleUser, `{"courseId":"`+courseID.String()+`","rating":2}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, r, http.MethodPatch, "/feedback/1", "", `{"rating":3}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, r, http.MethodPatch, "/feedback/1", users.RoleTrainer, `{"rating":3}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, r, http.MethodPatch, "/feedback/1", users.RoleUser, `{"rating":3}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, r, http.MethodPut, "/feedback/1", users.RoleAdmin, `{"commentEn":"Better now"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var updated Feedback
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&updated))
	assert.Equal(t, 3, updated.Rating)
	require.NotNil(t, updated.CommentEn)
	assert.Equal(t, "Better now", *updated.CommentEn)
}

func TestFeedbackHandler_DeleteIsAdminOnly(t *testing.T) {
	courseID := uuid.New()
	r := newTestRouter(t, courseID)

	rec := do(t, r, http.MethodPost, "/feedback", users.RoleUser, `{"courseId":"`+courseID.String()+`","rating":1}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, r, http.MethodDelete, "/feedback/1", users.RoleUser, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, r, http.MethodDelete, "/feedback/1", users.RoleAdmin, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var ack httpapi.DeleteResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&ack))
	assert.Equal(t, "Feedback deleted successfully", ack.Message)
	assert.Equal(t, "1", ack.ID)
}
