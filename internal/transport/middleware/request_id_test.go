package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsimmons/yukawa/pkg/ctxutil"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	incoming := uuid.NewString()

	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{"reuses incoming uuid", incoming, true},
		{"reuses opaque token", "edge-7f3a:42", true},
		{"max length", strings.Repeat("a", maxRequestIDLen), true},
		{"missing", "", false},
		{"too long", strings.Repeat("a", maxRequestIDLen+1), false},
		{"whitespace", "abc def", false},
		{"control character", "abc\x01", false},
		{"non-ascii", "идентификатор", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var inCtx string
			h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				inCtx = ctxutil.RequestIDFromCtx(r.Context())
			}))

			req := httptest.NewRequest(http.MethodPost, "/v1/es/activity", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			echoed := rec.Header().Get(RequestIDHeader)
			require.NotEmpty(t, echoed)
			assert.Equal(t, echoed, inCtx, "context and response carry the same id")

			if tt.keep {
				assert.Equal(t, tt.incoming, echoed)
				return
			}
			_, err := uuid.Parse(echoed)
			assert.NoError(t, err, "generated id should be a UUID, got %q", echoed)
		})
	}
}

func TestRequestID_UniquePerRequest(t *testing.T) {
	t.Parallel()

	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	seen := make(map[string]bool)
	for range 20 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live", nil))
		id := rec.Header().Get(RequestIDHeader)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
