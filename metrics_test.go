package clientcore

import (
	"sync"
	"testing"
)

func TestMetricsDisabledIsInert(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: false})

	m.Inc(MetricLoginSuccess)
	if got := m.Value(MetricLoginSuccess); got != 0 {
		t.Fatalf("disabled metrics must not count, got %d", got)
	}
	if got := len(m.Snapshot().Counters); got != 0 {
		t.Fatalf("disabled snapshot must be empty, got %d entries", got)
	}
	if m.Enabled() {
		t.Fatal("Enabled() must report false")
	}
}

func TestMetricsCountsConcurrently(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	const workers = 8
	const perWorker = 1000

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				m.Inc(MetricLoginSuccess)
			}
		}()
	}
	wg.Wait()

	if got := m.Value(MetricLoginSuccess); got != workers*perWorker {
		t.Fatalf("Value = %d, want %d", got, workers*perWorker)
	}
	if got := m.Snapshot().Counters[MetricLoginSuccess]; got != workers*perWorker {
		t.Fatalf("Snapshot = %d, want %d", got, workers*perWorker)
	}
}

func TestMetricsIgnoresOutOfRangeID(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	m.Inc(metricIDCount)
	m.Inc(MetricID(1000))
	if got := m.Value(MetricID(1000)); got != 0 {
		t.Fatalf("out-of-range Value = %d, want 0", got)
	}
}

func TestMetricsNilReceiver(t *testing.T) {
	var m *Metrics
	m.Inc(MetricLoginSuccess)
	if m.Value(MetricLoginSuccess) != 0 {
		t.Fatal("nil receiver Value must be 0")
	}
	if m.Enabled() {
		t.Fatal("nil receiver must report disabled")
	}
	if m.Snapshot().Counters == nil {
		t.Fatal("nil receiver snapshot must still carry a map")
	}
}
