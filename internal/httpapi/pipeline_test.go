package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"academy/internal/validation"
	"academy/pkg/apperrors"
)

type stubVerifier struct {
	ident Identity
	err   error
}

func (s *stubVerifier) Verify(_ context.Context, _ string) (Identity, error) {
	return s.ident, s.err
}

func newTestPipeline(verify TokenVerifier, roles RoleResolver) *Pipeline {
	if verify == nil {
		verify = &stubVerifier{err: apperrors.New(apperrors.CodeUnauthorized, "Invalid or missing token")}
	}
	if roles == nil {
		roles = &stubRoles{role: "admin"}
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewPipeline(verify, NewAuthorizer(roles), validation.NewRegistry(), logger)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

func TestHandle_OpenRouteInvokesHandler(t *testing.T) {
	pipe := newTestPipeline(nil, nil)
	invoked := 0
	h := pipe.Handle(Route{Resource: "levels", Operation: "list"}, func(w http.ResponseWriter, r *http.Request, req Request) error {
		invoked++
		assert.Nil(t, req.Identity)
		WriteJSON(w, http.StatusOK, map[string]string{"ok": "yes"})
		return nil
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/levels", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, invoked)
}

func TestHandle_MissingTokenOnGuardedRoute(t *testing.T) {
	roles := &stubRoles{role: "admin"}
	pipe := newTestPipeline(nil, roles)
	invoked := 0
	h := pipe.Handle(Route{Resource: "levels", Operation: "create", Roles: []string{"admin"}}, func(http.ResponseWriter, *http.Request, Request) error {
		invoked++
		return nil
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/levels", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusUnauthorized, env.StatusCode)
	assert.Equal(t, "Invalid or missing token", env.Message)
	assert.Equal(t, "/levels", env.Path)
	assert.NotEmpty(t, env.Timestamp)
	// Authentication failed before any role lookup.
	assert.Zero(t, roles.calls)
	assert.Zero(t, invoked)
}

func TestHandle_MalformedAuthorizationHeader(t *testing.T) {
	pipe := newTestPipeline(&stubVerifier{ident: Identity{UserID: "u1"}}, nil)
	h := pipe.Handle(Route{Resource: "users", Operation: "list", Roles: []string{"admin"}}, func(http.ResponseWriter, *http.Request, Request) error {
		t.Fatal("handler must not run")
		return nil
	})

	for _, header := range []string{"Token abc", "Bearer", "Bearer "} {
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		h(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestHandle_ForbiddenRole(t *testing.T) {
	pipe := newTestPipeline(&stubVerifier{ident: Identity{UserID: "u1"}}, &stubRoles{role: "user"})
	h := pipe.Handle(Route{Resource: "users", Operation: "list", Roles: []string{"admin"}}, func(http.ResponseWriter, *http.Request, Request) error {
		t.Fatal("handler must not run")
		return nil
	})

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	h(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Forbidden", decodeEnvelope(t, rec).Message)
}

func TestHandle_ValidatesBodyAgainstSchema(t *testing.T) {
	pipe := newTestPipeline(nil, nil)
	pipe.Schemas().Register("levels", "create", &validation.Schema{Fields: []validation.Field{
		{Name: "nameEn", Kind: validation.String, Required: true},
		{Name: "nameAr", Kind: validation.String, Required: true},
	}})

	var got map[string]any
	h := pipe.Handle(Route{Resource: "levels", Operation: "create"}, func(w http.ResponseWriter, r *http.Request, req Request) error {
		got = req.Body
		WriteJSON(w, http.StatusCreated, req.Body)
		return nil
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/levels", strings.NewReader(`{"nameEn":"Beginner","nameAr":"مبتدئ","hax":true}`)))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, map[string]any{"nameEn": "Beginner", "nameAr": "مبتدئ"}, got)

	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/levels", strings.NewReader(`{"nameEn":"Beginner"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, `"nameAr" is required`, decodeEnvelope(t, rec).Message)
}

func TestHandle_InvalidJSONBody(t *testing.T) {
	pipe := newTestPipeline(nil, nil)
	h := pipe.Handle(Route{Resource: "levels", Operation: "create"}, func(http.ResponseWriter, *http.Request, Request) error {
		t.Fatal("handler must not run")
		return nil
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/levels", strings.NewReader(`{"nameEn":`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid JSON body", decodeEnvelope(t, rec).Message)
}

func TestHandle_EmptyBodyToleratedWithoutRequiredFields(t *testing.T) {
	pipe := newTestPipeline(nil, nil)
	pipe.Schemas().Register("contact", "mark-read", &validation.Schema{Fields: []validation.Field{
		{Name: "read", Kind: validation.Bool, Default: true},
	}})

	var got map[string]any
	h := pipe.Handle(Route{Resource: "contact", Operation: "mark-read"}, func(w http.ResponseWriter, r *http.Request, req Request) error {
		got = req.Body
		w.WriteHeader(http.StatusOK)
		return nil
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPatch, "/contact/1/mark-read", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"read": true}, got)
}

func TestHandle_NoSchemaPassesRawBody(t *testing.T) {
	pipe := newTestPipeline(nil, nil)
	var got map[string]any
	h := pipe.Handle(Route{Resource: "unregistered", Operation: "create"}, func(w http.ResponseWriter, r *http.Request, req Request) error {
		got = req.Body
		w.WriteHeader(http.StatusOK)
		return nil
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/whatever", strings.NewReader(`{"anything":"goes"}`)))
	assert.Equal(t, map[string]any{"anything": "goes"}, got)
}

func TestHandle_HandlerErrorBecomesEnvelope(t *testing.T) {
	pipe := newTestPipeline(nil, nil)
	h := pipe.Handle(Route{Resource: "levels", Operation: "get"}, func(http.ResponseWriter, *http.Request, Request) error {
		return apperrors.New(apperrors.CodeNotFound, "Level with ID 42 not found")
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/levels/42", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Level with ID 42 not found", env.Message)
	assert.Equal(t, "/levels/42", env.Path)
}

func TestBind(t *testing.T) {
	var dst struct {
		NameEn string   `json:"nameEn"`
		Price  *float64 `json:"price"`
	}
	require.NoError(t, Bind(map[string]any{"nameEn": "Go", "price": 9.5}, &dst))
	assert.Equal(t, "Go", dst.NameEn)
	require.NotNil(t, dst.Price)
	assert.Equal(t, 9.5, *dst.Price)
}
