package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/tandemhr/ess-backend-go/internal/domain/identity"
	"github.com/tandemhr/ess-backend-go/internal/domain/user"
	"github.com/tandemhr/ess-backend-go/internal/handler/http/response"
)

type principalKey struct{}

// AuthRequired verifies the access token and stores the reconstructed
// principal on the request context. Super-admins may select a company with
// the X-Company-ID header; the override is ignored for everyone else.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}
			if token == nil {
				response.Unauthorized(w, "Missing or invalid token")
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.Unauthorized(w, "Missing or invalid token")
				return
			}
			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != "access" {
				response.Unauthorized(w, "Missing or invalid token")
				return
			}

			p := identity.Principal{}
			if v, ok := claims["user_id"].(string); ok {
				p.UserID = v
			}
			if v, ok := claims["employee_id"].(string); ok {
				p.EmployeeID = v
			}
			if v, ok := claims["company_id"].(string); ok {
				p.CompanyID = v
			}
			if v, ok := claims["role"].(string); ok {
				p.Role = user.Role(v)
			}
			if p.UserID == "" {
				response.Unauthorized(w, "Missing or invalid token")
				return
			}

			if override := r.Header.Get("X-Company-ID"); override != "" && p.Role == user.RoleSuperAdmin {
				p.CompanyOverride = &override
			}

			ctx := context.WithValue(r.Context(), principalKey{}, p)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

// PrincipalFromContext returns the principal stored by AuthRequired.
func PrincipalFromContext(ctx context.Context) (identity.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(identity.Principal)
	return p, ok
}

// EmployeeRequired rejects principals that have no employee record, which
// covers admin accounts hitting employee-only surfaces.
func EmployeeRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFromContext(r.Context())
		if !ok || p.EmployeeID == "" {
			response.Forbidden(w, "This endpoint requires an employee account")
			return
		}
		next.ServeHTTP(w, r)
	})
}
