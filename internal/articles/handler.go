package articles

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
	staff := []string{users.RoleAdmin, users.RoleTrainer}

	r.Route("/articles", func(r chi.Router) {
		r.Get("/", h.pipe.Handle(httpapi.Route{Resource: "articles", Operation: "list"}, h.list))
		r.Get("/{id}", h.pipe.Handle(httpapi.Route{Resource: "articles", Operation: "get"}, h.get))
		r.Post("/", h.pipe.Handle(httpapi.Route{Resource: "articles", Operation: "create", Roles: staff}, h.create))
		r.Patch("/{id}", h.pipe.Handle(httpapi.Route{Resource: "articles", Operation: "update", Roles: staff}, h.update))
		r.Put("/{id}", h.pipe.Handle(httpapi.Route{Resource: "articles", Operation: "update", Roles: staff}, h.update))
		r.Delete("/{id}", h.pipe.Handle(httpapi.Route{Resource: "articles", Operation: "delete", Roles: admin}, h.delete))
		r.Patch("/{id}/publish", h.pipe.Handle(httpapi.Route{Resource: "articles", Operation: "publish", Roles: admin}, h.publish))
	})
}

func (h *Handler) registerSchemas(reg *validation.Registry) {
	reg.Register("articles", "create", &validation.Schema{Fields: []validation.Field{
		{Name: "titleEn", Kind: validation.String, Required: true},
		{Name: "titleAr", Kind: validation.String, Required: true},
		{Name: "contentEn", Kind: validation.String, Required: true},
		{Name: "contentAr", Kind: validation.String, Required: true},
		{Name: "categoryId", Kind: validation.Int},
		{Name: "imageUrl", Kind: validation.String, AllowEmpty: true},
		{Name: "published", Kind: validation.Bool},
	}})
	reg.Register("articles", "update", &validation.Schema{Fields: []validation.Field{
		{Name: "titleEn", Kind: validation.String},
		{Name: "titleAr", Kind: validation.String},
		{Name: "contentEn", Kind: validation.String},
		{Name: "contentAr", Kind: validation.String},
		{Name: "categoryId", Kind: validation.Int},
		{Name: "imageUrl", Kind: validation.String, AllowEmpty: true},
		{Name: "published", Kind: validation.Bool},
	}})
	reg.Register("articles", "publish", &validation.Schema{Fields: []validation.Field{
		{Name: "published", Kind: validation.Bool, Required: true},
	}})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, _ httpapi.Request) error {
	query := r.URL.Query()
	page := httpapi.NormalizePage(query)

	var published *bool
	if raw := query.Get("published"); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			published = &parsed
		}
	}

	total, list, err := h.svc.List(r.Context(), query.Get("search"), published, page)
	if err != nil {
		return err
	}
	httpapi.WriteJSON(w, http.StatusOK, httpapi.NewListResponse(total, page, list))
	return nil
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request, _ httpapi.Request) error {
	article, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	httpapi.WriteJSON(w, http.StatusOK, article)
	return nil
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request, req httpapi.Request) error {
	var in CreateInput
	if err := httpapi.Bind(req.Body, &in); err != nil {
		return err
	}
	article, err := h.svc.Create(r.Context(), in)
	if err != nil {
		return err
	}
	h.metrics.IncrementCreated("articles")
	httpapi.WriteJSON(w, http.StatusCreated, article)
	return nil
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request, req httpapi.Request) error {
	var in UpdateInput
	if err := httpapi.Bind(req.Body, &in); err != nil {
		return err
	}
	article, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		return err
	}
	httpapi.WriteJSON(w, http.StatusOK, article)
	return nil
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request, _ httpapi.Request) error {
	id := chi.URLParam(r, "id")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		return err
	}
	h.metrics.IncrementDeleted("articles")
	httpapi.WriteJSON(w, http.StatusOK, httpapi.NewDeleteResponse("Article", id))
	return nil
}

func (h *Handler) publish(w http.ResponseWriter, r *http.Request, req httpapi.Request) error {
	var in struct {
		Published bool `json:"published"`
	}
	if err := httpapi.Bind(req.Body, &in); err != nil {
		return err
	}
	article, err := h.svc.SetPublished(r.Context(), chi.URLParam(r, "id"), in.Published)
	if err != nil {
		return err
	}
	httpapi.WriteJSON(w, http.StatusOK, article)
	return nil
}
