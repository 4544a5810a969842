package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"dine-on-time-api/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLogger(t *testing.T) {
	logger, hook := test.NewNullLogger()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	r := gin.New()
	r.Use(RequestLogger(logger.WithField("component", "http"), m))
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for _, path := range []string{"/items/1", "/items/2", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := hook.AllEntries()
	require.Len(t, entries, 3)
	assert.Equal(t, log.InfoLevel, entries[0].Level)
	assert.Equal(t, "/items/1", entries[0].Data["path"])
	assert.Equal(t, http.StatusNoContent, entries[0].Data["status"])
	assert.Equal(t, log.WarnLevel, entries[2].Level)

	count, err := testutil.GatherAndCount(reg, "dineontime_http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
