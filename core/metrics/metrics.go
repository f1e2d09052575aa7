package metrics

import "github.com/kilianp07/battsim/core/sim"

// CellSample is a snapshot of the cell state at a point in simulated
// time.
type CellSample struct {
	RunID      string
	Time       sim.Time
	RemainingJ float64
	VoltageV   float64
	DrainedAh  float64
	LoadA      float64
}

// DepletionRecord captures the terminal depletion of a cell.
type DepletionRecord struct {
	RunID      string
	Time       sim.Time
	RemainingJ float64
	VoltageV   float64
	DrainedAh  float64
}

// Sink records cell samples for observability purposes.
type Sink interface {
	RecordCellSample(s CellSample) error
}

// DepletionRecorder is implemented by sinks able to record depletion
// events.
type DepletionRecorder interface {
	RecordDepletion(rec DepletionRecord) error
}

// NopSink implements Sink and DepletionRecorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordCellSample(CellSample) error     { return nil }
func (NopSink) RecordDepletion(DepletionRecord) error { return nil }
