package categories

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"academy/internal/httpapi"
	"academy/internal/platform/metrics"
	"academy/internal/users"
	"academy/internal/validation"
)

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
	admin := []string{users.RoleAdmin}

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.pipe.Handle(httpapi.Route{Resource: "categories", Operation: "list"}, h.list))
		r.Get("/{id}", h.pipe.Handle(httpapi.Route{Resource: "categories", Operation: "get"}, h.get))
		r.Post("/", h.pipe.Handle(httpapi.Route{Resource: "categories", Operation: "create", Roles: admin}, h.create))
		r.Patch("/{id}", h.pipe.Handle(httpapi.Route{Resource: "categories", Operation: "update", Roles: admin}, h.update))
		r.Put("/{id}", h.pipe.Handle(httpapi.Route{Resource: "categories", Operation: "update", Roles: admin}, h.update))
		r.Delete("/{id}", h.pipe.Handle(httpapi.Route{Resource: "categories", Operation: "delete", Roles: admin}, h.delete))
	})
}

func (h *Handler) registerSchemas(reg *validation.Registry) {
	reg.Register("categories", "create", &validation.Schema{Fields: []validation.Field{
		{Name: "nameEn", Kind: validation.String, Required: true},
		{Name: "nameAr", Kind: validation.String, Required: true},
		{Name: "descriptionEn", Kind: validation.String, AllowEmpty: true},
		{Name: "descriptionAr", Kind: validation.String, AllowEmpty: true},
		{Name: "tags", Kind: validation.StringSlice},
	}})
	reg.Register("categories", "update", &validation.Schema{Fields: []validation.Field{
		{Name: "nameEn", Kind: validation.String},
		{Name: "nameAr", Kind: validation.String},
		{Name: "descriptionEn", Kind: validation.String, AllowEmpty: true},
		{Name: "descriptionAr", Kind: validation.String, AllowEmpty: true},
		{Name: "tags", Kind: validation.StringSlice},
	}})
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
	category, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	httpapi.WriteJSON(w, http.StatusOK, category)
	return nil
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request, req httpapi.Request) error {
	var in CreateInput
	if err := httpapi.Bind(req.Body, &in); err != nil {
		return err
	}
	category, err := h.svc.Create(r.Context(), in)
	if err != nil {
		return err
	}
	h.metrics.IncrementCreated("categories")
	httpapi.WriteJSON(w, http.StatusCreated, category)
	return nil
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request, req httpapi.Request) error {
	var in UpdateInput
	if err := httpapi.Bind(req.Body, &in); err != nil {
		return err
	}
	category, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		return err
	}
	httpapi.WriteJSON(w, http.StatusOK, category)
	return nil
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request, _ httpapi.Request) error {
	id := chi.URLParam(r, "id")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		return err
	}
	h.metrics.IncrementDeleted("categories")
	httpapi.WriteJSON(w, http.StatusOK, httpapi.NewDeleteResponse("Category", id))
	return nil
}
