package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/inkwellcms/inkwell/internal/model"
	"github.com/inkwellcms/inkwell/internal/service"
)

type contextKeyAuth string

// adminKey is the context key for the authenticated admin identity.
const adminKey contextKeyAuth = "admin"

// unauthorizedMessage is the single body returned for every authentication
// failure. Malformed, forged, expired, and unknown-subject tokens are
// indistinguishable from outside.
const unauthorizedMessage = "Could not validate credentials"

// Authenticate returns an HTTP middleware that requires a valid
// `Authorization: Bearer <token>` header, resolves the caller's identity
// through the auth service, and attaches it to the request context.
func Authenticate(authSvc *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeUnauthorized(w)
				return
			}

			admin, err := authSvc.Authenticate(r.Context(), strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), adminKey, admin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdmin extracts the authenticated admin from the context. Returns nil
// for unauthenticated requests.
func GetAdmin(ctx context.Context) *model.AdminUser {
	if admin, ok := ctx.Value(adminKey).(*model.AdminUser); ok {
		return admin
	}
	return nil
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	// Constructed by hand to avoid an import cycle with the handler package.
	w.Write([]byte(`{"error":{"code":401,"message":"` + unauthorizedMessage + `"}}`))
}
