package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"academy/internal/httpapi"
	"academy/internal/platform/metrics"
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

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.pipe.Handle(httpapi.Route{Resource: "auth", Operation: "register"}, h.register))
		r.Post("/login", h.pipe.Handle(httpapi.Route{Resource: "auth", Operation: "login"}, h.login))
		r.Post("/logout", h.pipe.Handle(httpapi.Route{Resource: "auth", Operation: "logout", Authenticated: true}, h.logout))
	})
}

func (h *Handler) registerSchemas(reg *validation.Registry) {
	reg.Register("auth", "register", &validation.Schema{Fields: []validation.Field{
		{Name: "email", Kind: validation.Email, Required: true},
		{Name: "password", Kind: validation.String, Required: true, MinLen: 6},
		{Name: "displayName", Kind: validation.String, AllowEmpty: true},
	}})
	reg.Register("auth", "login", &validation.Schema{Fields: []validation.Field{
		{Name: "email", Kind: validation.Email, Required: true},
		{Name: "password", Kind: validation.String, Required: true},
	}})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request, req httpapi.Request) error {
	var in RegisterInput
	if err := httpapi.Bind(req.Body, &in); err != nil {
		return err
	}
	user, err := h.svc.Register(r.Context(), in)
	if err != nil {
		return err
	}
	h.metrics.IncrementCreated("users")
	httpapi.WriteJSON(w, http.StatusCreated, user)
	return nil
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request, req httpapi.Request) error {
	var in LoginInput
	if err := httpapi.Bind(req.Body, &in); err != nil {
		return err
	}
	token, err := h.svc.Login(r.Context(), in)
	if err != nil {
		h.metrics.AuthFailures.Inc()
		return err
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]string{"access_token": token})
	return nil
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request, _ httpapi.Request) error {
	// The pipeline already verified the header is well-formed.
	token, _ := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if err := h.svc.Logout(r.Context(), token); err != nil {
		return err
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
	return nil
}
