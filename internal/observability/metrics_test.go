package observability

import (
	"testing"
	"time"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/products", "GET", 200, 5*time.Millisecond)
	m.RecordRequest("/products", "GET", 200, 7*time.Millisecond)
	m.RecordError("/auth/login", "POST", "UNAUTHORIZED")

	requests, errors := m.Snapshot()
	if requests["/products|GET|200"] != 2 {
		t.Fatalf("expected 2 requests, got %d", requests["/products|GET|200"])
	}
	if errors["/auth/login|POST|UNAUTHORIZED"] != 1 {
		t.Fatalf("expected 1 error, got %d", errors["/auth/login|POST|UNAUTHORIZED"])
	}
}

func TestMetricsNilReceiver(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/x", "GET", 200, 0)
	m.RecordError("/x", "GET", "X")
}
