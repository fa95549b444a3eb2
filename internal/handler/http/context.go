package http

import (
	"net/http"
	"strconv"

	"github.com/tandemhr/ess-backend-go/internal/domain/identity"
	"github.com/tandemhr/ess-backend-go/internal/handler/http/middleware"
	"github.com/tandemhr/ess-backend-go/internal/handler/http/response"
)

// principalFrom pulls the authenticated principal off the request, writing
// the 401 itself when the middleware did not run.
func principalFrom(w http.ResponseWriter, r *http.Request) (identity.Principal, bool) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return identity.Principal{}, false
	}
	return p, true
}

// limitOffset parses list pagination with sane bounds.
func limitOffset(r *http.Request) (limit, offset int) {
	limit, offset = 20, 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}
