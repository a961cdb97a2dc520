// Package requestid assigns a correlation ID to every request.
package requestid

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"medcalc/pkg/requestcontext"
)

// Header carries the request ID in both directions.
const Header = "X-Request-ID"

const maxInboundLength = 128

// Middleware reuses a caller-supplied X-Request-ID when it is reasonable,
// otherwise generates a UUID, and echoes it on the response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(Header))
		if id == "" || len(id) > maxInboundLength {
			id = uuid.NewString()
		}
		w.Header().Set(Header, id)
		ctx := requestcontext.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
