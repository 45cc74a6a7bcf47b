package service

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordTranscriptExportCountsPerFormat(t *testing.T) {
	m := NewMetricsService()
	m.RecordTranscriptExport("pdf")
	m.RecordTranscriptExport("pdf")
	m.RecordTranscriptExport("csv")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, `transcript_exports_total{format="pdf"} 2`)
	assert.Contains(t, body, `transcript_exports_total{format="csv"} 1`)
}

func TestMetricsNilReceiverIsSafe(t *testing.T) {
	var m *MetricsService
	assert.NotPanics(t, func() {
		m.RecordTranscriptExport("csv")
		m.ObserveDBQuery("noop", 0)
	})
	assert.Zero(t, m.Snapshot().RequestsTotal)
}
