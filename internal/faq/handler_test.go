package faq

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

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	pipe := httpapi.NewPipeline(stubAuth{}, httpapi.NewAuthorizer(stubAuth{}), validation.NewRegistry(), logger)
	m := metrics.New(prometheus.NewRegistry())

	r := chi.NewRouter()
	NewHandler(NewService(NewInMemoryStore()), pipe, logger, m).Register(r)
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

const questionBody = `{"titleEn":"How do I enroll?","titleAr":"كيف أسجل؟","answerEn":"Pick a course.","answerAr":"اختر دورة."}`

func TestQuestions_CreateRequiresAdmin(t *testing.T) {
	r := newTestRouter(t)

	rec := do(t, r, http.MethodPost, "/frequent-questions", "", questionBody)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, r, http.MethodPost, "/frequent-questions", users.RoleUser, questionBody)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, r, http.MethodPost, "/frequent-questions", users.RoleAdmin, questionBody)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var created Question
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, "How do I enroll?", created.TitleEn)
	assert.NotZero(t, created.ID)
}

func TestQuestions_CreateValidation(t *testing.T) {
	r := newTestRouter(t)

	rec := do(t, r, http.MethodPost, "/frequent-questions", users.RoleAdmin, `{"titleEn":"Only a title"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var env httpapi.Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	assert.Equal(t, `"titleAr" is required, "answerEn" is required, "answerAr" is required`, env.Message)
	assert.Equal(t, "/frequent-questions", env.Path)
}

func TestQuestions_ListIsOpenAndPaginated(t *testing.T) {
	r := newTestRouter(t)
	for _, title := range []string{"First", "Second", "Third"} {
		body := `{"titleEn":"` + title + `","titleAr":"` + title + `","answerEn":"A","answerAr":"B"}`
		rec := do(t, r, http.MethodPost, "/frequent-questions", users.RoleAdmin, body)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := do(t, r, http.MethodGet, "/frequent-questions?page=2&perPage=2", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Total   int        `json:"total"`
		Page    int        `json:"page"`
		PerPage int        `json:"perPage"`
		Data    []Question `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 2, resp.PerPage)
	assert.Len(t, resp.Data, 1)
}

func TestQuestions_DeleteTwice(t *testing.T) {
	r := newTestRouter(t)
	rec := do(t, r, http.MethodPost, "/frequent-questions", users.RoleAdmin, questionBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, r, http.MethodDelete, "/frequent-questions/1", users.RoleAdmin, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var ack httpapi.DeleteResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&ack))
	assert.Equal(t, "Frequent question deleted successfully", ack.Message)
	assert.Equal(t, "1", ack.ID)

	rec = do(t, r, http.MethodDelete, "/frequent-questions/1", users.RoleAdmin, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var env httpapi.Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	assert.Equal(t, "Frequent question with ID 1 not found", env.Message)
}

func TestQuestions_UpdateViaPatchAndPut(t *testing.T) {
	r := newTestRouter(t)
	rec := do(t, r, http.MethodPost, "/frequent-questions", users.RoleAdmin, questionBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, r, http.MethodPatch, "/frequent-questions/1", users.RoleAdmin, `{"titleEn":"Updated title"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, r, http.MethodPut, "/frequent-questions/1", users.RoleAdmin, `{"answerEn":"Updated answer"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var updated Question
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&updated))
	assert.Equal(t, "Updated title", updated.TitleEn)
	assert.Equal(t, "Updated answer", updated.AnswerEn)
	assert.Equal(t, "كيف أسجل؟", updated.TitleAr)
}
