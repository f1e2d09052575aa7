package metrics

import coremetrics "github.com/kilianp07/battsim/core/metrics"

// MultiSink fans records out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordCellSample forwards the sample to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordCellSample(s coremetrics.CellSample) error {
	for _, sink := range m.Sinks {
		if err := sink.RecordCellSample(s); err != nil {
			return err
		}
	}
	return nil
}

// RecordDepletion forwards the depletion record to the sinks that
// support it.
func (m *MultiSink) RecordDepletion(rec coremetrics.DepletionRecord) error {
	for _, sink := range m.Sinks {
		if r, ok := sink.(coremetrics.DepletionRecorder); ok {
			if err := r.RecordDepletion(rec); err != nil {
				return err
			}
		}
	}
	return nil
}
