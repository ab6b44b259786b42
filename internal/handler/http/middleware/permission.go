package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/punchclock-io/punchclock-backend-go/internal/domain/user"
	"github.com/punchclock-io/punchclock-backend-go/internal/handler/http/response"
)

func permissionFromRequest(r *http.Request) (user.Permission, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return 0, false
	}
	return user.PermissionFromClaim(claims["permission"])
}

// RequireEmployer admits employers and net admins.
func RequireEmployer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		permission, ok := permissionFromRequest(r)
		if !ok || (!permission.IsEmployer() && !permission.IsNetAdmin()) {
			response.HandleError(w, user.ErrUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireNetAdmin admits net admins only.
func RequireNetAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		permission, ok := permissionFromRequest(r)
		if !ok || !permission.IsNetAdmin() {
			response.HandleError(w, user.ErrUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
