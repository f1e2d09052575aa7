package metrics

import (
	coremetrics "github.com/kilianp07/battsim/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink exposes the cell state as Prometheus metrics.
type PromSink struct {
	remaining  *prometheus.GaugeVec
	voltage    *prometheus.GaugeVec
	drained    *prometheus.GaugeVec
	load       *prometheus.GaugeVec
	depletions *prometheus.CounterVec
}

// NewPromSink registers the cell metrics on the default Prometheus
// registerer. The metrics server is started separately.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	remaining := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "battsim_cell_remaining_energy_joules",
		Help: "Remaining energy stored in the cell",
	}, []string{"run_id"})
	voltage := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "battsim_cell_voltage_volts",
		Help: "Terminal voltage of the cell",
	}, []string{"run_id"})
	drained := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "battsim_cell_drained_capacity_ah",
		Help: "Cumulative charge removed from the cell",
	}, []string{"run_id"})
	load := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "battsim_cell_load_amperes",
		Help: "Instantaneous load on the cell",
	}, []string{"run_id"})
	depletions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "battsim_cell_depletions_total",
		Help: "Number of cells that reached depletion",
	}, []string{"run_id"})

	s := &PromSink{remaining: remaining, voltage: voltage, drained: drained, load: load, depletions: depletions}
	for _, c := range []prometheus.Collector{remaining, voltage, drained, load, depletions} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return nil, err
			}
		}
	}
	return s, nil
}

// RecordCellSample updates the gauges from a cell snapshot.
func (s *PromSink) RecordCellSample(sample coremetrics.CellSample) error {
	labels := prometheus.Labels{"run_id": sample.RunID}
	s.remaining.With(labels).Set(sample.RemainingJ)
	s.voltage.With(labels).Set(sample.VoltageV)
	s.drained.With(labels).Set(sample.DrainedAh)
	s.load.With(labels).Set(sample.LoadA)
	return nil
}

// RecordDepletion increments the depletion counter.
func (s *PromSink) RecordDepletion(rec coremetrics.DepletionRecord) error {
	s.depletions.With(prometheus.Labels{"run_id": rec.RunID}).Inc()
	return nil
}
