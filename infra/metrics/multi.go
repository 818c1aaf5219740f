package metrics

import coremetrics "github.com/squadplan/squadplan/core/metrics"

// MultiSink fans events out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordBuild forwards the event to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordBuild(ev coremetrics.BuildEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordBuild(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordSolve forwards the event to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordSolve(ev coremetrics.SolveEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordSolve(ev); err != nil {
			return err
		}
	}
	return nil
}
