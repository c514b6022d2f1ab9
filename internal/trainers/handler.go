package trainers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"academy/internal/httpapi"
	"academy/internal/platform/metrics"
	"academy/internal/users"
	"academy/internal/validation"
	"academy/pkg/apperrors"
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
	staff := []string{users.RoleAdmin, users.RoleTrainer}

	r.Route("/trainers", func(r chi.Router) {
		r.Get("/", h.pipe.Handle(httpapi.Route{Resource: "trainers", Operation: "list"}, h.list))
		r.Get("/{id}", h.pipe.Handle(httpapi.Route{Resource: "trainers", Operation: "get"}, h.get))
		r.Post("/", h.pipe.Handle(httpapi.Route{Resource: "trainers", Operation: "create", Roles: staff}, h.create))
		r.Patch("/{id}", h.pipe.Handle(httpapi.Route{Resource: "trainers", Operation: "update", Roles: staff}, h.update))
		r.Put("/{id}", h.pipe.Handle(httpapi.Route{Resource: "trainers", Operation: "update", Roles: staff}, h.update))
		r.Delete("/{id}", h.pipe.Handle(httpapi.Route{Resource: "trainers", Operation: "delete", Roles: admin}, h.delete))
		r.Patch("/{id}/toggle-active", h.pipe.Handle(httpapi.Route{Resource: "trainers", Operation: "toggle-active", Roles: admin, RawBody: true}, h.toggleActive))
		r.Post("/{id}/photo", h.pipe.Handle(httpapi.Route{Resource: "trainers", Operation: "photo", Roles: staff, RawBody: true}, h.uploadPhoto))
	})
}

func (h *Handler) registerSchemas(reg *validation.Registry) {
	reg.Register("trainers", "create", &validation.Schema{Fields: []validation.Field{
		{Name: "nameEn", Kind: validation.String, Required: true},
		{Name: "nameAr", Kind: validation.String, Required: true},
		{Name: "bioEn", Kind: validation.String, AllowEmpty: true},
		{Name: "bioAr", Kind: validation.String, AllowEmpty: true},
		{Name: "specialityId", Kind: validation.Int},
		{Name: "email", Kind: validation.Email, AllowEmpty: true},
		{Name: "phone", Kind: validation.String, AllowEmpty: true},
		{Name: "active", Kind: validation.Bool},
	}})
	reg.Register("trainers", "update", &validation.Schema{Fields: []validation.Field{
		{Name: "nameEn", Kind: validation.String},
		{Name: "nameAr", Kind: validation.String},
		{Name: "bioEn", Kind: validation.String, AllowEmpty: true},
		{Name: "bioAr", Kind: validation.String, AllowEmpty: true},
		{Name: "specialityId", Kind: validation.Int},
		{Name: "email", Kind: validation.Email, AllowEmpty: true},
		{Name: "phone", Kind: validation.String, AllowEmpty: true},
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
	trainer, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	httpapi.WriteJSON(w, http.StatusOK, trainer)
	return nil
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request, req httpapi.Request) error {
	var in CreateInput
	if err := httpapi.Bind(req.Body, &in); err != nil {
		return err
	}
	trainer, err := h.svc.Create(r.Context(), in)
	if err != nil {
		return err
	}
	h.metrics.IncrementCreated("trainers")
	httpapi.WriteJSON(w, http.StatusCreated, trainer)
	return nil
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request, req httpapi.Request) error {
	var in UpdateInput
	if err := httpapi.Bind(req.Body, &in); err != nil {
		return err
	}
	trainer, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		return err
	}
	httpapi.WriteJSON(w, http.StatusOK, trainer)
	return nil
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request, _ httpapi.Request) error {
	id := chi.URLParam(r, "id")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		return err
	}
	h.metrics.IncrementDeleted("trainers")
	httpapi.WriteJSON(w, http.StatusOK, httpapi.NewDeleteResponse("Trainer", id))
	return nil
}

func (h *Handler) toggleActive(w http.ResponseWriter, r *http.Request, _ httpapi.Request) error {
	trainer, err := h.svc.ToggleActive(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"id":      trainer.ID,
		"active":  trainer.Active,
		"message": "Trainer status updated",
	})
	return nil
}

func (h *Handler) uploadPhoto(w http.ResponseWriter, r *http.Request, _ httpapi.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxPhotoSize)
	if err := r.ParseMultipartForm(MaxPhotoSize); err != nil {
		return apperrors.New(apperrors.CodeValidation, "Photo must not exceed 5MB")
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		return apperrors.New(apperrors.CodeValidation, `"photo" file is required`)
	}
	defer file.Close()

	if header.Size > MaxPhotoSize {
		return apperrors.New(apperrors.CodeValidation, "Photo must not exceed 5MB")
	}

	trainer, err := h.svc.SavePhoto(r.Context(), chi.URLParam(r, "id"), header.Header.Get("Content-Type"), file)
	if err != nil {
		return err
	}
	httpapi.WriteJSON(w, http.StatusOK, trainer)
	return nil
}
