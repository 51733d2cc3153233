package metrics

import (
	"sync"
	"testing"
	"time"
)

func TestMemoryObserverRecords(t *testing.T) {
	m := NewMemoryObserver()
	m.RecordEvent(StageEvent("translate", "mock", "a", 5*time.Millisecond, true))
	if len(m.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(m.Events))
	}
	ev := m.Events[0]
	if ev.Tags["stage"] != "translate" || ev.Tags["status"] != "ok" {
		t.Fatalf("unexpected tags: %v", ev.Tags)
	}
	if ev.Value != 5 {
		t.Fatalf("expected 5ms, got %f", ev.Value)
	}
}

func TestStageEventError(t *testing.T) {
	ev := StageEvent("synthesize", "mock", "b", 0, false)
	if ev.Tags["status"] != "error" {
		t.Fatalf("expected error status, got %s", ev.Tags["status"])
	}
}

func TestAsyncObserverCloseRacesRecord(t *testing.T) {
	a := NewAsyncObserver(NewMemoryObserver(), 4)

	// Late recorders racing shutdown must be dropped silently, never
	// panic on the closed channel.
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				a.RecordEvent(MetricsEvent{Name: "pipeline_stage"})
			}
		}()
	}
	a.Close()
	wg.Wait()

	a.RecordEvent(MetricsEvent{Name: "pipeline_stage"})
	a.Close()
}

func TestMultiObserverFansOut(t *testing.T) {
	a := NewMemoryObserver()
	b := NewMemoryObserver()
	multi := NewMultiObserver(a, b, nil)
	multi.RecordEvent(MetricsEvent{Name: "pipeline_stage"})
	if len(a.Events) != 1 || len(b.Events) != 1 {
		t.Fatalf("expected both observers to record")
	}
}
