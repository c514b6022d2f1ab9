package enrollments

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

	r.Route("/enrollments", func(r chi.Router) {
		r.Post("/", h.pipe.Handle(httpapi.Route{Resource: "enrollments", Operation: "create", Roles: []string{users.RoleAdmin, users.RoleUser}}, h.create))
		r.Get("/me/{userId}", h.pipe.Handle(httpapi.Route{Resource: "enrollments", Operation: "list-mine", Authenticated: true}, h.listByUser))
		r.Get("/course/{courseId}", h.pipe.Handle(httpapi.Route{Resource: "enrollments", Operation: "list-course", Roles: admin}, h.listByCourse))
		r.Patch("/{id}/status", h.pipe.Handle(httpapi.Route{Resource: "enrollments", Operation: "status", Roles: admin}, h.setStatus))
		r.Delete("/{id}", h.pipe.Handle(httpapi.Route{Resource: "enrollments", Operation: "delete", Roles: admin}, h.delete))
	})
}

func (h *Handler) registerSchemas(reg *validation.Registry) {
	reg.Register("enrollments", "create", &validation.Schema{Fields: []validation.Field{
		{Name: "userId", Kind: validation.UUID, Required: true},
		{Name: "courseId", Kind: validation.UUID, Required: true},
		{Name: "status", Kind: validation.String},
	}})
	reg.Register("enrollments", "status", &validation.Schema{Fields: []validation.Field{
		{Name: "status", Kind: validation.String, Required: true},
	}})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request, req httpapi.Request) error {
	var in CreateInput
	if err := httpapi.Bind(req.Body, &in); err != nil {
		return err
	}
	enrollment, err := h.svc.Create(r.Context(), in)
	if err != nil {
		return err
	}
	h.metrics.IncrementCreated("enrollments")
	httpapi.WriteJSON(w, http.StatusCreated, enrollment)
	return nil
}

func (h *Handler) listByUser(w http.ResponseWriter, r *http.Request, _ httpapi.Request) error {
	page := httpapi.NormalizePage(r.URL.Query())
	total, list, err := h.svc.ListByUser(r.Context(), chi.URLParam(r, "userId"), page)
	if err != nil {
		return err
	}
	httpapi.WriteJSON(w, http.StatusOK, httpapi.NewListResponse(total, page, list))
	return nil
}

func (h *Handler) listByCourse(w http.ResponseWriter, r *http.Request, _ httpapi.Request) error {
	page := httpapi.NormalizePage(r.URL.Query())
	total, list, err := h.svc.ListByCourse(r.Context(), chi.URLParam(r, "courseId"), page)
	if err != nil {
		return err
	}
	httpapi.WriteJSON(w, http.StatusOK, httpapi.NewListResponse(total, page, list))
	return nil
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request, req httpapi.Request) error {
	var in struct {
		Status string `json:"status"`
	}
	if err := httpapi.Bind(req.Body, &in); err != nil {
		return err
	}
	enrollment, err := h.svc.SetStatus(r.Context(), chi.URLParam(r, "id"), in.Status)
	if err != nil {
		return err
	}
	httpapi.WriteJSON(w, http.StatusOK, httpapi.MessageResponse{
		Message: "Enrollment status updated",
		Data:    enrollment,
	})
	return nil
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request, _ httpapi.Request) error {
	id := chi.URLParam(r, "id")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		return err
	}
	h.metrics.IncrementDeleted("enrollments")
	httpapi.WriteJSON(w, http.StatusOK, httpapi.NewDeleteResponse("Enrollment", id))
	return nil
}
