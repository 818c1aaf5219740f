package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/squadplan/squadplan/core/metrics"
)

func TestPromSinkRecordsEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	if err := sink.RecordBuild(coremetrics.BuildEvent{
		RunID:       "run-1",
		Employees:   10,
		Variables:   3800,
		Constraints: 900,
	}); err != nil {
		t.Fatalf("record build: %v", err)
	}
	if err := sink.RecordSolve(coremetrics.SolveEvent{
		RunID:     "run-1",
		Status:    "optimal",
		Objective: 1,
		Decisions: 5000,
		Conflicts: 12,
		Elapsed:   200 * time.Millisecond,
	}); err != nil {
		t.Fatalf("record solve: %v", err)
	}

	if got := testutil.ToFloat64(sink.variables); got != 3800 {
		t.Errorf("variables gauge %v, want 3800", got)
	}
	if got := testutil.ToFloat64(sink.constraints); got != 900 {
		t.Errorf("constraints gauge %v, want 900", got)
	}
	if got := testutil.ToFloat64(sink.solves.WithLabelValues("optimal")); got != 1 {
		t.Errorf("solve counter %v, want 1", got)
	}
}

func TestPromSinkReregistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSinkWithRegistry(reg); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if _, err := NewPromSinkWithRegistry(reg); err != nil {
		t.Fatalf("second registration should reuse collectors: %v", err)
	}
}

func TestMultiSinkFanout(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	multi := NewMultiSink(coremetrics.NopSink{}, sink)
	if err := multi.RecordSolve(coremetrics.SolveEvent{Status: "feasible"}); err != nil {
		t.Fatalf("fanout: %v", err)
	}
	if got := testutil.ToFloat64(sink.solves.WithLabelValues("feasible")); got != 1 {
		t.Errorf("solve counter %v, want 1", got)
	}
}
