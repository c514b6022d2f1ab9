package contact

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

	r.Route("/contact", func(r chi.Router) {
		r.Post("/", h.pipe.Handle(httpapi.Route{Resource: "contact", Operation: "create"}, h.create))
		r.Get("/", h.pipe.Handle(httpapi.Route{Resource: "contact", Operation: "list"}, h.list))
		r.Get("/{id}", h.pipe.Handle(httpapi.Route{Resource: "contact", Operation: "get"}, h.get))
		r.Delete("/{id}", h.pipe.Handle(httpapi.Route{Resource: "contact", Operation: "delete", Roles: admin}, h.delete))
		r.Patch("/{id}/mark-read", h.pipe.Handle(httpapi.Route{Resource: "contact", Operation: "mark-read", Roles: admin}, h.markRead))
	})
}

func (h *Handler) registerSchemas(reg *validation.Registry) {
	reg.Register("contact", "create", &validation.Schema{Fields: []validation.Field{
		{Name: "name", Kind: validation.String, Required: true},
		{Name: "email", Kind: validation.Email, Required: true},
		{Name: "subject", Kind: validation.String, AllowEmpty: true},
		{Name: "message", Kind: validation.String, Required: true},
	}})
	reg.Register("contact", "mark-read", &validation.Schema{Fields: []validation.Field{
		{Name: "read", Kind: validation.Bool, Default: true},
	}})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request, req httpapi.Request) error {
	var in CreateInput
	if err := httpapi.Bind(req.Body, &in); err != nil {
		return err
	}
	message, err := h.svc.Create(r.Context(), in)
	if err != nil {
		return err
	}
	h.metrics.IncrementCreated("contact")
	httpapi.WriteJSON(w, http.StatusCreated, message)
	return nil
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, _ httpapi.Request) error {
	query := r.URL.Query()
	page := httpapi.NormalizePage(query)

	var read *bool
	if raw := query.Get("read"); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			read = &parsed
		}
	}

	total, list, err := h.svc.List(r.Context(), query.Get("search"), read, page)
	if err != nil {
		return err
	}
	httpapi.WriteJSON(w, http.StatusOK, httpapi.NewListResponse(total, page, list))
	return nil
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request, _ httpapi.Request) error {
	message, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	httpapi.WriteJSON(w, http.StatusOK, message)
	return nil
}

func (h *Handler) markRead(w http.ResponseWriter, r *http.Request, req httpapi.Request) error {
	var in struct {
		Read bool `json:"read"`
	}
	if err := httpapi.Bind(req.Body, &in); err != nil {
		return err
	}
	message, err := h.svc.SetRead(r.Context(), chi.URLParam(r, "id"), in.Read)
	if err != nil {
		return err
	}
	httpapi.WriteJSON(w, http.StatusOK, httpapi.MessageResponse{
		Message: "Contact message status updated",
		Data:    message,
	})
	return nil
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request, _ httpapi.Request) error {
	id := chi.URLParam(r, "id")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		return err
	}
	h.metrics.IncrementDeleted("contact")
	httpapi.WriteJSON(w, http.StatusOK, httpapi.NewDeleteResponse("Contact message", id))
	return nil
}
