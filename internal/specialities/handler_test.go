package specialities

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

func TestSpecialities_CreateRequiresAdmin(t *testing.T) {
	r := newTestRouter(t)
	body := `{"nameEn":"Yoga","nameAr":"يوغا"}`

	rec := do(t, r, http.MethodPost, "/specialities", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, r, http.MethodPost, "/specialities", users.RoleTrainer, body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, r, http.MethodPost, "/specialities", users.RoleAdmin, body)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var created Speciality
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, "Yoga", created.NameEn)
	assert.NotZero(t, created.ID)
}

func TestSpecialities_CreateValidation(t *testing.T) {
	r := newTestRouter(t)

	rec := do(t, r, http.MethodPost, "/specialities", users.RoleAdmin, `{"nameEn":"Only English"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var env httpapi.Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	assert.Equal(t, `"nameAr" is required`, env.Message)
	assert.Equal(t, "/specialities", env.Path)
}

func TestSpecialities_ListIsOpenAndPaginated(t *testing.T) {
	r := newTestRouter(t)
	for _, name := range []string{"A", "B", "C"} {
		rec := do(t, r, http.MethodPost, "/specialities", users.RoleAdmin, `{"nameEn":"`+name+`","nameAr":"`+name+`"}`)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := do(t, r, http.MethodGet, "/specialities?page=2&perPage=2", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Total   int          `json:"total"`
		Page    int          `json:"page"`
		PerPage int          `json:"perPage"`
		Data    []Speciality `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 2, resp.PerPage)
	assert.Len(t, resp.Data, 1)
}

func TestSpecialities_DeleteTwice(t *testing.T) {
	r := newTestRouter(t)
	rec := do(t, r, http.MethodPost, "/specialities", users.RoleAdmin, `{"nameEn":"Doomed","nameAr":"محكوم"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, r, http.MethodDelete, "/specialities/1", users.RoleAdmin, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var ack httpapi.DeleteResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&ack))
	assert.Equal(t, "Speciality deleted successfully", ack.Message)
	assert.Equal(t, "1", ack.ID)

	rec = do(t, r, http.MethodDelete, "/specialities/1", users.RoleAdmin, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var env httpapi.Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	assert.Equal(t, "Speciality with ID 1 not found", env.Message)
}

func TestSpecialities_UpdateViaPatchAndPut(t *testing.T) {
	r := newTestRouter(t)
	rec := do(t, r, http.MethodPost, "/specialities", users.RoleAdmin, `{"nameEn":"Old","nameAr":"قديم"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, r, http.MethodPatch, "/specialities/1", users.RoleAdmin, `{"nameEn":"Patched"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, r, http.MethodPut, "/specialities/1", users.RoleAdmin, `{"descriptionEn":"Strength and mobility"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var updated Speciality
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&updated))
	assert.Equal(t, "Patched", updated.NameEn)
	require.NotNil(t, updated.DescriptionEn)
	assert.Equal(t, "Strength and mobility", *updated.DescriptionEn)
}
