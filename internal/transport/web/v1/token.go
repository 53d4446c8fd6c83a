package v1

import (
	"net/http"
	"strings"
)

// TokenFromRequest pulls the raw bearer token from the Authorization
// header, with ?token= as a manual-testing fallback.
func TokenFromRequest(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return r.URL.Query().Get("token")
}
