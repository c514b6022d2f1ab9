package feedback

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
	members := []string{users.RoleAdmin, users.RoleUser}

	r.Route("/feedback", func(r chi.Router) {
		r.Post("/", h.pipe.Handle(httpapi.Route{Resource: "feedback", Operation: "create", Authenticated: true}, h.create))
		r.Get("/course/{courseId}", h.pipe.Handle(httpapi.Route{Resource: "feedback", Operation: "list-course"}, h.listByCourse))
		r.Get("/user/{userId}", h.pipe.Handle(httpapi.Route{Resource: "feedback", Operation: "list-user"}, h.listByUser))
		r.Get("/{id}", h.pipe.Handle(httpapi.Route{Resource: "feedback", Operation: "get"}, h.get))
		r.Patch("/{id}", h.pipe.Handle(httpapi.Route{Resource: "feedback", Operation: "update", Roles: members}, h.update))
		r.Put("/{id}", h.pipe.Handle(httpapi.Route{Resource: "feedback", Operation: "update", Roles: members}, h.update))
		r.Delete("/{id}", h.pipe.Handle(httpapi.Route{Resource: "feedback", Operation: "delete", Roles: admin}, h.delete))
	})
}

func (h *Handler) registerSchemas(reg *validation.Registry) {
	reg.Register("feedback", "create", &validation.Schema{Fields: []validation.Field{
		{Name: "courseId", Kind: validation.UUID, Required: true},
		{Name: "rating", Kind: validation.Int, Required: true, Min: validation.Float(1), Max: validation.Float(5)},
		{Name: "commentEn", Kind: validation.String, AllowEmpty: true},
		{Name: "commentAr", Kind: validation.String, AllowEmpty: true},
		{Name: "userId", Kind: validation.UUID},
		{Name: "email", Kind: validation.Email},
	}})
	reg.Register("feedback", "update", &validation.Schema{Fields: []validation.Field{
		{Name: "rating", Kind: validation.Int, Min: validation.Float(1), Max: validation.Float(5)},
		{Name: "commentEn", Kind: validation.String, AllowEmpty: true},
		{Name: "commentAr", Kind: validation.String, AllowEmpty: true},
	}})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request, req httpapi.Request) error {
	var in CreateInput
	if err := httpapi.Bind(req.Body, &in); err != nil {
		return err
	}
	fb, err := h.svc.Create(r.Context(), in)
	if err != nil {
		return err
	}
	h.metrics.IncrementCreated("feedback")
	httpapi.WriteJSON(w, http.StatusCreated, fb)
	return nil
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request, _ httpapi.Request) error {
	fb, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	httpapi.WriteJSON(w, http.StatusOK, fb)
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

func (h *Handler) listByUser(w http.ResponseWriter, r *http.Request, _ httpapi.Request) error {
	page := httpapi.NormalizePage(r.URL.Query())
	total, list, err := h.svc.ListByUser(r.Context(), chi.URLParam(r, "userId"), page)
	if err != nil {
		return err
	}
	httpapi.WriteJSON(w, http.StatusOK, httpapi.NewListResponse(total, page, list))
	return nil
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request, req httpapi.Request) error {
	var in UpdateInput
	if err := httpapi.Bind(req.Body, &in); err != nil {
		return err
	}
	fb, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		return err
	}
	httpapi.WriteJSON(w, http.StatusOK, fb)
	return nil
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request, _ httpapi.Request) error {
	id := chi.URLParam(r, "id")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		return err
	}
	h.metrics.IncrementDeleted("feedback")
	httpapi.WriteJSON(w, http.StatusOK, httpapi.NewDeleteResponse("Feedback", id))
	return nil
}
