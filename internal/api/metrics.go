package api

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/manav03panchal/daybook/internal/errors"
)

// Metrics tracks request counters for a running server.
type Metrics struct {
	startedAt time.Time

	// Counters
	requestsTotal atomic.Int64
	errorsTotal   atomic.Int64
	entriesSaved  atomic.Int64

	// Gauges with mutex for complex types
	mu               sync.RWMutex
	lastLatencyMs    int64
	lastRequestAt    time.Time
	lastError        string
	lastErrorAt      time.Time
	errorsByCategory map[string]int64
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{
		startedAt:        time.Now(),
		errorsByCategory: make(map[string]int64),
	}
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	UptimeSeconds    int64            `json:"uptime_seconds"`
	RequestsTotal    int64            `json:"requests_total"`
	ErrorsTotal      int64            `json:"errors_total"`
	EntriesSaved     int64            `json:"entries_saved_total"`
	LastLatencyMs    int64            `json:"last_latency_ms"`
	LastRequestAt    *time.Time       `json:"last_request_at,omitempty"`
	LastError        string           `json:"last_error,omitempty"`
	LastErrorAt      *time.Time       `json:"last_error_at,omitempty"`
	ErrorsByCategory map[string]int64 `json:"errors_by_category"`
}

// Snapshot returns a copy of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := MetricsSnapshot{
		UptimeSeconds:    int64(time.Since(m.startedAt).Seconds()),
		RequestsTotal:    m.requestsTotal.Load(),
		ErrorsTotal:      m.errorsTotal.Load(),
		EntriesSaved:     m.entriesSaved.Load(),
		LastLatencyMs:    m.lastLatencyMs,
		LastError:        m.lastError,
		ErrorsByCategory: make(map[string]int64, len(m.errorsByCategory)),
	}
	if !m.lastRequestAt.IsZero() {
		t := m.lastRequestAt
		snap.LastRequestAt = &t
	}
	if !m.lastErrorAt.IsZero() {
		t := m.lastErrorAt
		snap.LastErrorAt = &t
	}
	for k, v := range m.errorsByCategory {
		snap.ErrorsByCategory[k] = v
	}
	return snap
}

// RecordRequest records a finished request and its latency.
func (m *Metrics) RecordRequest(latency time.Duration) {
	m.requestsTotal.Add(1)

	m.mu.Lock()
	m.lastLatencyMs = latency.Milliseconds()
	m.lastRequestAt = time.Now()
	m.mu.Unlock()
}

// RecordEntrySaved counts a created or updated entry.
func (m *Metrics) RecordEntrySaved() {
	m.entriesSaved.Add(1)
}

// RecordError records a failed request under the error's category.
func (m *Metrics) RecordError(err error) {
	m.errorsTotal.Add(1)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastError = err.Error()
	m.lastErrorAt = time.Now()
	m.errorsByCategory[errors.Classify(err).String()]++
}

// RequestsTotal returns the number of finished requests.
func (m *Metrics) RequestsTotal() int64 {
	return m.requestsTotal.Load()
}

// ErrorsTotal returns the number of failed requests.
func (m *Metrics) ErrorsTotal() int64 {
	return m.errorsTotal.Load()
}

// middleware records every request that passes through the app.
func (m *Metrics) middleware(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	m.RecordRequest(time.Since(start))
	if err != nil {
		m.RecordError(err)
	}
	return err
}
