package pricing

import (
	"log/slog"
	"net/http"
	"strconv"

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

	r.Route("/pricing", func(r chi.Router) {
		r.Get("/", h.pipe.Handle(httpapi.Route{Resource: "pricing", Operation: "list"}, h.list))
		r.Get("/{id}", h.pipe.Handle(httpapi.Route{Resource: "pricing", Operation: "get"}, h.get))
		r.Post("/", h.pipe.Handle(httpapi.Route{Resource: "pricing", Operation: "create", Roles: admin}, h.create))
		r.Patch("/{id}", h.pipe.Handle(httpapi.Route{Resource: "pricing", Operation: "update", Roles: admin}, h.update))
		r.Put("/{id}", h.pipe.Handle(httpapi.Route{Resource: "pricing", Operation: "update", Roles: admin}, h.update))
		r.Delete("/{id}", h.pipe.Handle(httpapi.Route{Resource: "pricing", Operation: "delete", Roles: admin}, h.delete))
		r.Patch("/{id}/toggle-active", h.pipe.Handle(httpapi.Route{Resource: "pricing", Operation: "toggle-active", Roles: admin, RawBody: true}, h.toggleActive))
	})
}

func (h *Handler) registerSchemas(reg *validation.Registry) {
	reg.Register("pricing", "create", &validation.Schema{Fields: []validation.Field{
		{Name: "nameEn", Kind: validation.String, Required: true},
		{Name: "nameAr", Kind: validation.String, Required: true},
		{Name: "price", Kind: validation.Number, Required: true, Min: validation.Float(0)},
		{Name: "period", Kind: validation.String, AllowEmpty: true},
		{Name: "featuresEn", Kind: validation.StringSlice, Default: []string{}},
		{Name: "featuresAr", Kind: validation.StringSlice, Default: []string{}},
		{Name: "active", Kind: validation.Bool},
	}})
	reg.Register("pricing", "update", &validation.Schema{Fields: []validation.Field{
		{Name: "nameEn", Kind: validation.String},
		{Name: "nameAr", Kind: validation.String},
		{Name: "price", Kind: validation.Number, Min: validation.Float(0)},
		{Name: "period", Kind: validation.String, AllowEmpty: true},
		{Name: "featuresEn", Kind: validation.StringSlice},
		{Name: "featuresAr", Kind: validation.StringSlice},
		{Name: "active", Kind: validation.Bool},
	}})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, _ httpapi.Request) error {
	query := r.URL.Query()
	page := httpapi.NormalizePage(query)

	var active *bool
	if raw := query.Get("active"); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			active = &parsed
		}
	}

	total, list, err := h.svc.List(r.Context(), query.Get("search"), active, page)
	if err != nil {
		return err
	}
	httpapi.WriteJSON(w, http.StatusOK, httpapi.NewListResponse(total, page, list))
	return nil
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request, _ httpapi.Request) error {
	plan, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	httpapi.WriteJSON(w, http.StatusOK, plan)
	return nil
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request, req httpapi.Request) error {
	var in CreateInput
	if err := httpapi.Bind(req.Body, &in); err != nil {
		return err
	}
	plan, err := h.svc.Create(r.Context(), in)
	if err != nil {
		return err
	}
	h.metrics.IncrementCreated("pricing")
	httpapi.WriteJSON(w, http.StatusCreated, plan)
	return nil
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request, req httpapi.Request) error {
	var in UpdateInput
	if err := httpapi.Bind(req.Body, &in); err != nil {
		return err
	}
	plan, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		return err
	}
	httpapi.WriteJSON(w, http.StatusOK, plan)
	return nil
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request, _ httpapi.Request) error {
	id := chi.URLParam(r, "id")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		return err
	}
	h.metrics.IncrementDeleted("pricing")
	httpapi.WriteJSON(w, http.StatusOK, httpapi.NewDeleteResponse("Pricing plan", id))
	return nil
}

func (h *Handler) toggleActive(w http.ResponseWriter, r *http.Request, _ httpapi.Request) error {
	plan, err := h.svc.ToggleActive(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"id":      plan.ID,
		"active":  plan.Active,
		"message": "Pricing plan status updated",
	})
	return nil
}
