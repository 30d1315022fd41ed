package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerExposesImportMetrics(t *testing.T) {
	m := New()
	m.ObserveImport("xlsx", nil, 7, 3, 1, 20*time.Millisecond)
	m.ObserveImport("rows", errors.New("row 2: malformed"), 0, 0, 0, time.Millisecond)
	m.SetConnections(2)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `venueboard_imports_total{format="xlsx",status="ok"} 1`)
	assert.Contains(t, body, `venueboard_imports_total{format="rows",status="error"} 1`)
	assert.Contains(t, body, `venueboard_rows_total{outcome="accepted"} 7`)
	assert.Contains(t, body, `venueboard_rows_total{outcome="excluded"} 3`)
	assert.Contains(t, body, `venueboard_rows_total{outcome="skipped"} 1`)
	assert.Contains(t, body, `venueboard_records 7`)
	assert.Contains(t, body, `venueboard_websocket_connections 2`)
	assert.Contains(t, body, `venueboard_build_duration_seconds_count 2`)
}
