package requestid

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medcalc/pkg/requestcontext"
)

func serve(t *testing.T, inbound string) (ctxID, header string) {
	t.Helper()
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = requestcontext.RequestID(r.Context())
	}))
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if inbound != "" {
		r.Header.Set(Header, inbound)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, r)
	return ctxID, rr.Header().Get(Header)
}

func TestMiddleware(t *testing.T) {
	t.Run("generates a uuid when absent", func(t *testing.T) {
		ctxID, header := serve(t, "")
		_, err := uuid.Parse(ctxID)
		require.NoError(t, err)
		assert.Equal(t, ctxID, header)
	})

	t.Run("propagates caller id", func(t *testing.T) {
		ctxID, header := serve(t, "trace-abc")
		assert.Equal(t, "trace-abc", ctxID)
		assert.Equal(t, "trace-abc", header)
	})

	t.Run("replaces oversized caller id", func(t *testing.T) {
		ctxID, _ := serve(t, strings.Repeat("x", maxInboundLength+1))
		_, err := uuid.Parse(ctxID)
		assert.NoError(t, err)
	})
}
