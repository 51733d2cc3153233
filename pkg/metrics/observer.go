package metrics

import "time"

type MetricsEvent struct {
	Name   string
	Time   time.Time
	Value  float64
	Tags   map[string]string
	Fields map[string]any
}

type Observer interface {
	RecordEvent(ev MetricsEvent)
}

type Flusher interface {
	Flush() error
}

type NoopObserver struct{}

func (NoopObserver) RecordEvent(MetricsEvent) {}

// StageEvent builds a pipeline stage latency event. Value is the stage
// duration in milliseconds.
func StageEvent(stage, provider, sender string, d time.Duration, ok bool) MetricsEvent {
	status := "ok"
	if !ok {
		status = "error"
	}
	return MetricsEvent{
		Name:  "pipeline_stage",
		Time:  time.Now(),
		Value: float64(d.Milliseconds()),
		Tags: map[string]string{
			"stage":    stage,
			"provider": provider,
			"sender":   sender,
			"status":   status,
		},
	}
}
