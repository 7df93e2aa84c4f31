package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	scoresComputedTotal       atomic.Uint64
	analysesStartedTotal      atomic.Uint64
	analysesCompletedTotal    atomic.Uint64
	analysesFailedTotal       atomic.Uint64
	suggestionsGeneratedTotal atomic.Uint64
	suggestionsSkippedTotal   atomic.Uint64
	reportsWrittenTotal       atomic.Uint64

	analysisDuration   = newHistogram([]float64{250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
	llmRequestDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000})
)

// IncScoreComputed increments the match-score counter.
func IncScoreComputed() {
	scoresComputedTotal.Add(1)
}

// IncAnalysisStarted increments the started counter.
func IncAnalysisStarted() {
	analysesStartedTotal.Add(1)
}

// IncAnalysisCompleted increments the completed counter.
func IncAnalysisCompleted() {
	analysesCompletedTotal.Add(1)
}

// IncAnalysisFailed increments the failed counter.
func IncAnalysisFailed() {
	analysesFailedTotal.Add(1)
}

// IncSuggestionGenerated increments the suggestion counter.
func IncSuggestionGenerated() {
	suggestionsGeneratedTotal.Add(1)
}

// IncSuggestionSkipped counts suggestion runs that degraded to a no-op.
func IncSuggestionSkipped() {
	suggestionsSkippedTotal.Add(1)
}

// IncReportWritten increments the report counter.
func IncReportWritten() {
	reportsWrittenTotal.Add(1)
}

// ObserveAnalysisDurationMs records a full analysis duration in milliseconds.
func ObserveAnalysisDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	analysisDuration.Observe(value)
}

// ObserveLLMRequestDurationMs records one model round trip in milliseconds.
func ObserveLLMRequestDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	llmRequestDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "screener_scores_computed_total", "Total match scores computed", scoresComputedTotal.Load())
	writeCounter(&buf, "screener_analyses_started_total", "Total analyses started", analysesStartedTotal.Load())
	writeCounter(&buf, "screener_analyses_completed_total", "Total analyses completed", analysesCompletedTotal.Load())
	writeCounter(&buf, "screener_analyses_failed_total", "Total analyses failed", analysesFailedTotal.Load())
	writeCounter(&buf, "screener_suggestions_generated_total", "Total interview suggestions generated", suggestionsGeneratedTotal.Load())
	writeCounter(&buf, "screener_suggestions_skipped_total", "Total suggestion runs skipped or degraded", suggestionsSkippedTotal.Load())
	writeCounter(&buf, "screener_reports_written_total", "Total reports written", reportsWrittenTotal.Load())
	analysisDuration.writeTo(&buf, "screener_analysis_duration_ms", "Full analysis duration in milliseconds")
	llmRequestDuration.writeTo(&buf, "screener_llm_request_duration_ms", "Model round-trip duration in milliseconds")
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	// counts holds per-bucket tallies; writeTo accumulates them into the
	// cumulative series the text format requires.
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) writeTo(buf *bytes.Buffer, name, help string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range h.buckets {
		cumulative += h.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, h.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(h.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, h.count)
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
