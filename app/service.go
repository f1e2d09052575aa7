package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kilianp07/battsim/config"
	"github.com/kilianp07/battsim/core/battery"
	"github.com/kilianp07/battsim/core/energy"
	"github.com/kilianp07/battsim/core/logger"
	coremetrics "github.com/kilianp07/battsim/core/metrics"
	"github.com/kilianp07/battsim/core/sim"
	infralogger "github.com/kilianp07/battsim/infra/logger"
	"github.com/kilianp07/battsim/infra/metrics"
	"github.com/kilianp07/battsim/infra/mqtt"
	"github.com/kilianp07/battsim/internal/eventbus"
)

// Summary reports the outcome of a simulation run.
type Summary struct {
	RunID      string
	EndTime    sim.Time
	RemainingJ float64
	Fraction   float64
	VoltageV   float64
	DrainedAh  float64
	Depleted   bool
}

// Service wires a configured cell, its load scenario and the
// observability sinks, and drives the virtual-time run.
type Service struct {
	cfg   *config.Config
	log   logger.Logger
	runID string

	sched *sim.Scheduler
	cell  *battery.Cell
	dev   *energy.SimpleDevice

	sink coremetrics.Sink
	bus  *eventbus.Bus[coremetrics.CellSample]

	promEnabled bool
	promAddr    string

	closers []func()
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := infralogger.New("service")
	sched := sim.NewScheduler()

	cell, err := battery.NewCell(cfg.Cell.Parameters(), sched, infralogger.New("cell"))
	if err != nil {
		return nil, fmt.Errorf("build cell: %w", err)
	}
	dev := energy.NewSimpleDevice(cell)
	cell.AttachDevice(dev)

	svc := &Service{
		cfg:   cfg,
		log:   logg,
		runID: uuid.NewString(),
		sched: sched,
		cell:  cell,
		dev:   dev,
		bus:   eventbus.New[coremetrics.CellSample](),
	}

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink()
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
		svc.promEnabled = true
		svc.promAddr = cfg.Metrics.PrometheusAddr
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(
			cfg.Metrics.InfluxURL, cfg.Metrics.InfluxToken, cfg.Metrics.InfluxOrg, cfg.Metrics.InfluxBucket))
	}
	if cfg.Metrics.JSONLEnabled {
		sink, err := metrics.NewJSONLSink(cfg.Metrics.JSONLPath)
		if err != nil {
			return nil, fmt.Errorf("jsonl sink: %w", err)
		}
		sinks = append(sinks, sink)
		svc.closers = append(svc.closers, func() { _ = sink.Close() })
	}
	if cfg.MQTT.Enabled {
		pub, err := mqtt.NewPublisher(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		sinks = append(sinks, pub)
		svc.closers = append(svc.closers, pub.Close)
	}
	switch len(sinks) {
	case 0:
		svc.sink = coremetrics.NopSink{}
	case 1:
		svc.sink = sinks[0]
	default:
		svc.sink = metrics.NewMultiSink(sinks...)
	}
	return svc, nil
}

// RunID identifies this run in sink records and MQTT topics.
func (s *Service) RunID() string { return s.runID }

// Samples returns a subscription delivering every recorded cell sample.
func (s *Service) Samples() <-chan coremetrics.CellSample { return s.bus.Subscribe() }

// Run executes the scenario until its stop time, checking ctx between
// events, and returns the final cell state.
func (s *Service) Run(ctx context.Context) (Summary, error) {
	scn := s.cfg.Scenario

	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	s.cell.AddObserver(energy.ObserverFunc(func(ev energy.DepletionEvent) {
		s.log.Infof("run %s: cell depleted at %v (%.1f J left, %.3f V)",
			s.runID, ev.Time, ev.RemainingJ, ev.VoltageV)
		if rec, ok := s.sink.(coremetrics.DepletionRecorder); ok {
			if err := rec.RecordDepletion(coremetrics.DepletionRecord{
				RunID:      s.runID,
				Time:       ev.Time,
				RemainingJ: ev.RemainingJ,
				VoltageV:   ev.VoltageV,
				DrainedAh:  ev.DrainedAh,
			}); err != nil {
				s.log.Errorf("record depletion: %v", err)
			}
		}
	}))

	for _, step := range scn.Steps {
		st := step
		s.sched.Schedule(st.At(), func() { s.dev.SetCurrentA(st.CurrentA) })
	}

	var sample func()
	sample = func() {
		s.recordSample()
		if !s.cell.Depleted() {
			s.sched.Schedule(scn.SampleInterval(), sample)
		}
	}
	s.sched.Schedule(scn.SampleInterval(), sample)

	s.cell.Start()

	stop := sim.Time(scn.StopAfter())
	for {
		if err := ctx.Err(); err != nil {
			return s.summary(), err
		}
		next, ok := s.sched.NextAt()
		if !ok || next > stop {
			break
		}
		s.sched.Step()
	}
	s.sched.RunUntil(stop)
	s.recordSample()
	s.bus.Close()
	return s.summary(), nil
}

// Close releases the sinks.
func (s *Service) Close() error {
	for _, c := range s.closers {
		c()
	}
	return nil
}

func (s *Service) recordSample() {
	sample := coremetrics.CellSample{
		RunID:      s.runID,
		Time:       s.sched.Now(),
		RemainingJ: s.cell.RemainingEnergy(),
		VoltageV:   s.cell.SupplyVoltage(),
		DrainedAh:  s.cell.DrainedCapacityAh(),
		LoadA:      s.cell.TotalCurrentA(),
	}
	s.bus.Publish(sample)
	if err := s.sink.RecordCellSample(sample); err != nil {
		s.log.Errorf("record sample: %v", err)
	}
	s.log.Debugw("sample", map[string]any{
		"time":        sample.Time.String(),
		"remaining_j": sample.RemainingJ,
		"voltage_v":   sample.VoltageV,
	})
}

func (s *Service) summary() Summary {
	return Summary{
		RunID:      s.runID,
		EndTime:    s.sched.Now(),
		RemainingJ: s.cell.RemainingEnergy(),
		Fraction:   s.cell.EnergyFraction(),
		VoltageV:   s.cell.SupplyVoltage(),
		DrainedAh:  s.cell.DrainedCapacityAh(),
		Depleted:   s.cell.Depleted(),
	}
}
