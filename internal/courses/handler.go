package courses

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

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
	staff := []string{users.RoleAdmin, users.RoleTrainer}

	r.Route("/courses", func(r chi.Router) {
		r.Get("/", h.pipe.Handle(httpapi.Route{Resource: "courses", Operation: "list"}, h.list))
		r.Get("/{id}", h.pipe.Handle(httpapi.Route{Resource: "courses", Operation: "get"}, h.get))
		r.Post("/", h.pipe.Handle(httpapi.Route{Resource: "courses", Operation: "create", Roles: staff}, h.create))
		r.Patch("/{id}", h.pipe.Handle(httpapi.Route{Resource: "courses", Operation: "update", Roles: staff}, h.update))
		r.Put("/{id}", h.pipe.Handle(httpapi.Route{Resource: "courses", Operation: "update", Roles: staff}, h.update))
		r.Delete("/{id}", h.pipe.Handle(httpapi.Route{Resource: "courses", Operation: "delete", Roles: staff}, h.delete))
	})
}

func (h *Handler) registerSchemas(reg *validation.Registry) {
	reg.Register("courses", "create", &validation.Schema{Fields: []validation.Field{
		{Name: "nameEn", Kind: validation.String, Required: true},
		{Name: "nameAr", Kind: validation.String, Required: true},
		{Name: "descriptionEn", Kind: validation.String, AllowEmpty: true},
		{Name: "descriptionAr", Kind: validation.String, AllowEmpty: true},
		{Name: "categoryId", Kind: validation.Int},
		{Name: "trainerId", Kind: validation.UUID},
		{Name: "levelId", Kind: validation.UUID},
		{Name: "published", Kind: validation.Bool},
		{Name: "price", Kind: validation.Number, Min: validation.Float(0)},
		{Name: "url", Kind: validation.String, AllowEmpty: true},
		{Name: "syllabusEn", Kind: validation.StringSlice},
		{Name: "syllabusAr", Kind: validation.StringSlice},
	}})
	reg.Register("courses", "update", &validation.Schema{Fields: []validation.Field{
		{Name: "nameEn", Kind: validation.String},
		{Name: "nameAr", Kind: validation.String},
		{Name: "descriptionEn", Kind: validation.String, AllowEmpty: true},
		{Name: "descriptionAr", Kind: validation.String, AllowEmpty: true},
		{Name: "categoryId", Kind: validation.Int},
		{Name: "trainerId", Kind: validation.UUID},
		{Name: "levelId", Kind: validation.UUID},
		{Name: "published", Kind: validation.Bool},
		{Name: "price", Kind: validation.Number, Min: validation.Float(0)},
		{Name: "url", Kind: validation.String, AllowEmpty: true},
		{Name: "syllabusEn", Kind: validation.StringSlice},
		{Name: "syllabusAr", Kind: validation.StringSlice},
	}})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, _ httpapi.Request) error {
	query := r.URL.Query()
	page := httpapi.NormalizePage(query)
	q := ListQuery{Search: query.Get("search")}

	if raw := query.Get("categoryId"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			q.CategoryID = &id
		}
	}
	if raw := query.Get("trainerId"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			q.TrainerID = &id
		}
	}
	if raw := query.Get("levelId"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			q.LevelID = &id
		}
	}
	if raw := query.Get("published"); raw != "" {
		if published, err := strconv.ParseBool(raw); err == nil {
			q.Published = &published
		}
	}
	if raw := query.Get("minPrice"); raw != "" {
		if price, err := strconv.ParseFloat(raw, 64); err == nil {
			q.MinPrice = &price
		}
	}
	if raw := query.Get("maxPrice"); raw != "" {
		if price, err := strconv.ParseFloat(raw, 64); err == nil {
			q.MaxPrice = &price
		}
	}

	total, list, err := h.svc.List(r.Context(), q, page)
	if err != nil {
		return err
	}
	httpapi.WriteJSON(w, http.StatusOK, httpapi.NewListResponse(total, page, list))
	return nil
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request, _ httpapi.Request) error {
	course, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	httpapi.WriteJSON(w, http.StatusOK, course)
	return nil
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request, req httpapi.Request) error {
	var in CreateInput
	if err := httpapi.Bind(req.Body, &in); err != nil {
		return err
	}
	course, err := h.svc.Create(r.Context(), in)
	if err != nil {
		return err
	}
	h.metrics.IncrementCreated("courses")
	httpapi.WriteJSON(w, http.StatusCreated, course)
	return nil
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request, req httpapi.Request) error {
	var in UpdateInput
	if err := httpapi.Bind(req.Body, &in); err != nil {
		return err
	}
	course, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		return err
	}
	httpapi.WriteJSON(w, http.StatusOK, course)
	return nil
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request, _ httpapi.Request) error {
	id := chi.URLParam(r, "id")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		return err
	}
	h.metrics.IncrementDeleted("courses")
	httpapi.WriteJSON(w, http.StatusOK, httpapi.NewDeleteResponse("Course", id))
	return nil
}
