package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/Pesokrava/ecommerce_catalog/internal/delivery/http/request"
	"github.com/Pesokrava/ecommerce_catalog/internal/delivery/http/response"
	"github.com/Pesokrava/ecommerce_catalog/internal/domain"
	"github.com/Pesokrava/ecommerce_catalog/internal/pkg/logger"
	"github.com/Pesokrava/ecommerce_catalog/internal/repository/session"
)

type contextKey struct{}

var userContextKey = contextKey{}

// UserFrom returns the authenticated user attached to the request context
func UserFrom(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userContextKey).(*domain.User)
	return user, ok
}

// WithUser attaches a user to the context the way Auth does. Handlers are
// tested against this instead of a live session store.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// Auth returns a middleware that resolves the bearer token through the
// session store and loads the user row. Unauthenticated requests are
// rejected with 401; role checks happen further down in the services.
func Auth(sessions *session.Store, users domain.UserRepository, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := request.BearerToken(r)
			if err != nil {
				response.Error(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			userID, err := sessions.Resolve(r.Context(), token)
			if err != nil {
				if !errors.Is(err, domain.ErrNotFound) {
					log.Error("Failed to resolve session", err)
				}
				response.Error(w, http.StatusUnauthorized, "Invalid or expired session")
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				if !errors.Is(err, domain.ErrNotFound) {
					log.Error("Failed to load authenticated user", err)
				}
				response.Error(w, http.StatusUnauthorized, "Invalid or expired session")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
