// Package httpapi implements the request pipeline shared by every resource
// endpoint: authenticate, authorize, validate the body against the schema
// registry, then invoke the handler. Any step's failure short-circuits the
// rest and produces exactly one error envelope.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"academy/internal/platform/middleware"
	"academy/internal/validation"
	"academy/pkg/apperrors"
)

// Identity is the caller resolved from a verified credential. It is
// immutable for the lifetime of one request.
type Identity struct {
	UserID string
	Email  string
	RoleID int64
}

// TokenVerifier turns a raw bearer token into a caller identity.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// Request carries the pipeline's per-call output into the handler.
type Request struct {
	// Identity is nil on open endpoints.
	Identity *Identity
	// Body is the coerced payload when a schema is registered for the
	// route, or the raw decoded payload when none is.
	Body map[string]any
}

// HandlerFunc is a resource handler. Returning an error delegates envelope
// construction to the pipeline; returning nil means the handler already
// wrote the response.
type HandlerFunc func(w http.ResponseWriter, r *http.Request, req Request) error

// Route declares the cross-cutting checks for one endpoint. The zero value
// is a fully open route with no validation.
type Route struct {
	// Resource and Operation key the schema registry lookup.
	Resource  string
	Operation string
	// Roles gates the route: empty means open. A caller needs ANY of the
	// listed role names.
	Roles []string
	// Authenticated requires a valid token without any role gate.
	Authenticated bool
	// RawBody leaves the request body untouched for handlers that consume
	// non-JSON payloads such as multipart uploads.
	RawBody bool
}

// Pipeline wires the shared checks. One instance serves every route; it
// holds no mutable state after startup.
type Pipeline struct {
	verify  TokenVerifier
	authz   *Authorizer
	schemas *validation.Registry
	logger  *slog.Logger
}

func NewPipeline(verify TokenVerifier, authz *Authorizer, schemas *validation.Registry, logger *slog.Logger) *Pipeline {
	return &Pipeline{verify: verify, authz: authz, schemas: schemas, logger: logger}
}

// Schemas exposes the registry so handlers can register their schemas at
// startup.
func (p *Pipeline) Schemas() *validation.Registry {
	return p.schemas
}

// Handle wraps h with the route's checks, in fixed order: authenticate,
// authorize, validate. The first failing step writes the envelope and stops.
func (p *Pipeline) Handle(rt Route, h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		req := Request{}

		if len(rt.Roles) > 0 || rt.Authenticated {
			ident, err := p.authenticate(ctx, r)
			if err != nil {
				p.warn(ctx, "authentication failed", rt, err)
				WriteError(w, r, err)
				return
			}
			req.Identity = &ident
		}

		if err := p.authz.Authorize(ctx, req.Identity, rt.Roles); err != nil {
			p.warn(ctx, "authorization denied", rt, err)
			WriteError(w, r, err)
			return
		}

		if hasBody(r.Method) && !rt.RawBody {
			body, err := p.validateBody(r, rt)
			if err != nil {
				p.warn(ctx, "validation failed", rt, err)
				WriteError(w, r, err)
				return
			}
			req.Body = body
		}

		if err := h(w, r, req); err != nil {
			if apperrors.CodeOf(err) == apperrors.CodeInternal {
				p.logger.ErrorContext(ctx, "handler error",
					"request_id", middleware.GetRequestID(ctx),
					"resource", rt.Resource,
					"operation", rt.Operation,
					"error", err,
				)
			}
			WriteError(w, r, err)
		}
	}
}

func (p *Pipeline) authenticate(ctx context.Context, r *http.Request) (Identity, error) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return Identity{}, apperrors.New(apperrors.CodeUnauthorized, "Invalid or missing token")
	}
	return p.verify.Verify(ctx, token)
}

// validateBody decodes the JSON payload and applies the registered schema.
// With no schema the raw payload passes through untouched.
func (p *Pipeline) validateBody(r *http.Request, rt Route) (map[string]any, error) {
	raw := map[string]any{}
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, apperrors.New(apperrors.CodeValidation, "Invalid JSON body")
	}

	schema := p.schemas.Resolve(rt.Resource, rt.Operation)
	if schema == nil {
		return raw, nil
	}
	return schema.Validate(raw)
}

func (p *Pipeline) warn(ctx context.Context, msg string, rt Route, err error) {
	p.logger.WarnContext(ctx, msg,
		"request_id", middleware.GetRequestID(ctx),
		"resource", rt.Resource,
		"operation", rt.Operation,
		"error", err,
	)
}

func hasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

// Bind decodes a coerced payload into a typed request struct via JSON
// round-trip. Handlers call it after the pipeline has validated the body.
func Bind(body map[string]any, dst any) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternal, "failed to encode payload")
	}
	if err := json.Unmarshal(buf, dst); err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternal, "failed to decode payload")
	}
	return nil
}
