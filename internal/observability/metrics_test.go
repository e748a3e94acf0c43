package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("/api/blogs", "GET", 200, 5*time.Millisecond)
	m.RecordRequest("/api/blogs", "GET", 200, 7*time.Millisecond)
	m.RecordRequest("/api/blogs", "GET", 404, time.Millisecond)
	m.RecordError("/api/leads", "GET", "UNAUTHORIZED")

	assert.Equal(t, int64(2), m.RequestCount("/api/blogs", "GET", 200))
	assert.Equal(t, int64(1), m.RequestCount("/api/blogs", "GET", 404))
	assert.Equal(t, int64(0), m.RequestCount("/api/blogs", "POST", 200))
	assert.Equal(t, int64(1), m.ErrorCount("/api/leads", "GET", "UNAUTHORIZED"))
	assert.Equal(t, int64(0), m.ErrorCount("/api/leads", "GET", "NOT_FOUND"))
}

func TestMetricsNilReceiver(t *testing.T) {
	var m *Metrics

	m.RecordRequest("/x", "GET", 200, 0)
	m.RecordError("/x", "GET", "INTERNAL_ERROR")
	assert.Equal(t, int64(0), m.RequestCount("/x", "GET", 200))
	assert.Equal(t, int64(0), m.ErrorCount("/x", "GET", "INTERNAL_ERROR"))
}
