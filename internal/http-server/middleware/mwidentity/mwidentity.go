// Package mwidentity reads the caller identity set by the upstream gateway.
// Authentication itself happens before requests reach this service.
package mwidentity

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"ticketBooker/internal/lib/api/response"
	"ticketBooker/internal/models"

	"github.com/go-chi/render"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

type ctxKey struct{}

func WithCaller(ctx context.Context, c models.Caller) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

func CallerFrom(ctx context.Context) (models.Caller, bool) {
	c, ok := ctx.Value(ctxKey{}).(models.Caller)
	if !ok || c.ID == "" {
		return models.Caller{}, false
	}
	return c, true
}

// New rejects requests without a caller id with 401. A missing role
// defaults to standard_user.
func New(log *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		log := log.With(slog.String("component", "middleware/identity"))

		fn := func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get(HeaderUserID))
			if id == "" {
				log.Debug("request without caller identity", slog.String("path", r.URL.Path))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("authentication required"))
				return
			}

			role := models.Role(strings.TrimSpace(r.Header.Get(HeaderUserRole)))
			if role == "" {
				role = models.RoleStandardUser
			}
			if !role.Valid() {
				log.Debug("request with unknown role", slog.String("role", string(role)))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unknown caller role"))
				return
			}

			ctx := WithCaller(r.Context(), models.Caller{ID: id, Role: role})

			next.ServeHTTP(w, r.WithContext(ctx))
		}

		return http.HandlerFunc(fn)
	}
}
