package metrics

import (
	"bytes"
	"strings"
	"testing"
)

func TestHistogramCumulativeBuckets(t *testing.T) {
	h := newHistogram([]float64{1, 5, 10})
	h.Observe(0.5)
	h.Observe(3)
	h.Observe(7)
	h.Observe(50)

	var buf bytes.Buffer
	writeHistogram(&buf, "test_duration_ms", "help", h.Snapshot())
	out := buf.String()

	for _, line := range []string{
		`test_duration_ms_bucket{le="1"} 1`,
		`test_duration_ms_bucket{le="5"} 2`,
		`test_duration_ms_bucket{le="10"} 3`,
		`test_duration_ms_bucket{le="+Inf"} 4`,
		`test_duration_ms_count 4`,
		`test_duration_ms_sum 60.5`,
	} {
		if !strings.Contains(out, line) {
			t.Errorf("output missing %q:\n%s", line, out)
		}
	}
}

func TestRenderExposesCounters(t *testing.T) {
	IncMatchComputed()
	AddRecommendationsGenerated(3)

	out := Render()
	for _, name := range []string{
		"match_computed_total",
		"match_failed_total",
		"recommendations_generated_total",
		"match_duration_ms_bucket",
	} {
		if !strings.Contains(out, name) {
			t.Errorf("render missing %q", name)
		}
	}
}

func TestCounterFormat(t *testing.T) {
	var buf bytes.Buffer
	writeCounter(&buf, "things_total", "Total things", 7)
	want := "# HELP things_total Total things\n# TYPE things_total counter\nthings_total 7\n"
	if buf.String() != want {
		t.Errorf("counter output = %q, want %q", buf.String(), want)
	}
}
