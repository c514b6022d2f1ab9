package users

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"academy/internal/httpapi"
	"academy/internal/platform/metrics"
	"academy/internal/validation"
)

// Handler exposes the admin-only user management endpoints.
type Handler struct {
	logger  *slog.Logger
	svc     *Service
	pipe    *httpapi.Pipeline
	metrics *metrics.Metrics
}

func NewHandler(svc *Service, pipe *httpapi.Pipeline, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{logger: logger, svc: svc, pipe: pipe, metrics: m}
}

func (h *Handler) Register(r chi.Router) {
	h.registerSchemas(h.pipe.Schemas())
	admin := []string{RoleAdmin}

	r.Route("/users", func(r chi.Router) {
		r.Post("/", h.pipe.Handle(httpapi.Route{Resource: "users", Operation: "create", Roles: admin}, h.create))
		r.Get("/", h.pipe.Handle(httpapi.Route{Resource: "users", Operation: "list", Roles: admin}, h.list))
		r.Get("/{id}", h.pipe.Handle(httpapi.Route{Resource: "users", Operation: "get", Roles: admin}, h.get))
		r.Patch("/{id}", h.pipe.Handle(httpapi.Route{Resource: "users", Operation: "update", Roles: admin}, h.update))
		r.Put("/{id}", h.pipe.Handle(httpapi.Route{Resource: "users", Operation: "update", Roles: admin}, h.update))
		r.Delete("/{id}", h.pipe.Handle(httpapi.Route{Resource: "users", Operation: "delete", Roles: admin}, h.delete))
	})
}

func (h *Handler) registerSchemas(reg *validation.Registry) {
	reg.Register("users", "create", &validation.Schema{Fields: []validation.Field{
		{Name: "email", Kind: validation.Email, Required: true},
		{Name: "password", Kind: validation.String, Required: true, MinLen: 6},
		{Name: "displayName", Kind: validation.String, AllowEmpty: true},
		{Name: "roleId", Kind: validation.Int},
	}})
	reg.Register("users", "update", &validation.Schema{Fields: []validation.Field{
		{Name: "displayName", Kind: validation.String, AllowEmpty: true},
		{Name: "roleId", Kind: validation.Int},
		{Name: "password", Kind: validation.String, MinLen: 6},
	}})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request, req httpapi.Request) error {
	var in CreateInput
	if err := httpapi.Bind(req.Body, &in); err != nil {
		return err
	}
	user, err := h.svc.Create(r.Context(), in)
	if err != nil {
		return err
	}
	h.metrics.IncrementCreated("users")
	httpapi.WriteJSON(w, http.StatusCreated, user)
	return nil
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, _ httpapi.Request) error {
	page := httpapi.NormalizePage(r.URL.Query())
	total, list, err := h.svc.List(r.Context(), r.URL.Query().Get("search"), page)
	if err != nil {
		return err
	}
	httpapi.WriteJSON(w, http.StatusOK, httpapi.NewListResponse(total, page, list))
	return nil
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request, _ httpapi.Request) error {
	user, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	httpapi.WriteJSON(w, http.StatusOK, user)
	return nil
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request, req httpapi.Request) error {
	var in UpdateInput
	if err := httpapi.Bind(req.Body, &in); err != nil {
		return err
	}
	user, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		return err
	}
	httpapi.WriteJSON(w, http.StatusOK, user)
	return nil
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request, _ httpapi.Request) error {
	id := chi.URLParam(r, "id")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		return err
	}
	h.metrics.IncrementDeleted("users")
	httpapi.WriteJSON(w, http.StatusOK, httpapi.NewDeleteResponse("User", id))
	return nil
}
