package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/Pesokrava/ecommerce_catalog/internal/delivery/http/response"
	"github.com/Pesokrava/ecommerce_catalog/internal/pkg/logger"
)

// Recovery converts handler panics into 500 responses instead of dropped
// connections
func Recovery(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.WithFields(map[string]interface{}{
						"panic":  rec,
						"method": r.Method,
						"path":   r.URL.Path,
						"stack":  string(debug.Stack()),
					}).Warn("Panic recovered")

					response.Error(w, http.StatusInternalServerError, "Internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
