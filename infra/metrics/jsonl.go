package metrics

import (
	"encoding/json"
	"os"
	"sync"

	coremetrics "github.com/kilianp07/battsim/core/metrics"
)

// JSONLSink appends one JSON object per cell sample to a file. It is
// the diagnostic time-series log of (time, remaining energy) pairs.
type JSONLSink struct {
	mu sync.Mutex
	f  *os.File
	e  *json.Encoder
}

type jsonlRecord struct {
	RunID      string  `json:"run_id"`
	SimSeconds float64 `json:"sim_seconds"`
	RemainingJ float64 `json:"remaining_j"`
	VoltageV   float64 `json:"voltage_v"`
	DrainedAh  float64 `json:"drained_ah"`
	LoadA      float64 `json:"load_a"`
	Depleted   bool    `json:"depleted,omitempty"`
}

// NewJSONLSink creates or truncates the trace file at path.
func NewJSONLSink(path string) (*JSONLSink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	return &JSONLSink{f: f, e: json.NewEncoder(f)}, nil
}

// RecordCellSample appends the sample as one JSON line.
func (s *JSONLSink) RecordCellSample(sample coremetrics.CellSample) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.e.Encode(jsonlRecord{
		RunID:      sample.RunID,
		SimSeconds: sample.Time.Seconds(),
		RemainingJ: sample.RemainingJ,
		VoltageV:   sample.VoltageV,
		DrainedAh:  sample.DrainedAh,
		LoadA:      sample.LoadA,
	})
}

// RecordDepletion appends a terminal record for the run.
func (s *JSONLSink) RecordDepletion(rec coremetrics.DepletionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.e.Encode(jsonlRecord{
		RunID:      rec.RunID,
		SimSeconds: rec.Time.Seconds(),
		RemainingJ: rec.RemainingJ,
		VoltageV:   rec.VoltageV,
		DrainedAh:  rec.DrainedAh,
		Depleted:   true,
	})
}

// Close flushes and closes the trace file.
func (s *JSONLSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.Close()
}
