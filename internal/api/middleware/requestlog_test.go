package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		method        string
		path          string
		status        int
		providedReqID string
		wantLogFields []string
		wantNoLog     bool
	}{
		{
			name:   "logs GET request with generated ID",
			method: http.MethodGet,
			path:   "/api/v1/offers",
			status: http.StatusOK,
			wantLogFields: []string{
				"level=INFO",
				"method=GET",
				"path=/api/v1/offers",
				"status=200",
				"duration_ms=",
				"request_id=",
			},
		},
		{
			name:          "uses provided request ID",
			method:        http.MethodPost,
			path:          "/api/v1/run",
			status:        http.StatusOK,
			providedReqID: "custom-req-id-123",
			wantLogFields: []string{"method=POST", "request_id=custom-req-id-123"},
		},
		{
			name:          "client error logs at warn",
			method:        http.MethodGet,
			path:          "/api/v1/offers/MLU404",
			status:        http.StatusNotFound,
			wantLogFields: []string{"level=WARN", "status=404"},
		},
		{
			name:          "server error logs at error",
			method:        http.MethodPost,
			path:          "/api/v1/run",
			status:        http.StatusInternalServerError,
			wantLogFields: []string{"level=ERROR", "status=500"},
		},
		{
			name:      "successful probe is below info",
			method:    http.MethodGet,
			path:      "/healthz",
			status:    http.StatusOK,
			wantNoLog: true,
		},
		{
			name:          "failing probe is logged",
			method:        http.MethodGet,
			path:          "/readyz",
			status:        http.StatusServiceUnavailable,
			wantLogFields: []string{"level=ERROR", "path=/readyz", "status=503"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			e := echo.New()
			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			if tt.providedReqID != "" {
				req.Header.Set(requestIDHeader, tt.providedReqID)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler := RequestLog(logger)(func(c echo.Context) error {
				return c.NoContent(tt.status)
			})

			require.NoError(t, handler(c))

			if tt.wantNoLog {
				assert.Empty(t, buf.String())
			}
			for _, field := range tt.wantLogFields {
				assert.Contains(t, buf.String(), field)
			}

			respID := rec.Header().Get(requestIDHeader)
			assert.NotEmpty(t, respID)
			if tt.providedReqID != "" {
				assert.Equal(t, tt.providedReqID, respID)
			}
			assert.Equal(t, respID, c.Get(requestIDKey))
		})
	}
}

func TestRequestLog_HandlerErrorIsRendered(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/missing", http.NoBody)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequestLog(logger)(func(_ echo.Context) error {
		return echo.ErrNotFound
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, buf.String(), "status=404")
}
