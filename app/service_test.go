package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/kilianp07/battsim/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Cell.SetDefaults()
	cfg.Scenario.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.MQTT.SetDefaults()
	return cfg
}

func TestServiceRunReferenceScenario(t *testing.T) {
	cfg := testConfig(t)
	svc, err := New(cfg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	defer svc.Close()

	sum, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if sum.EndTime.Seconds() != 4200 {
		t.Errorf("end time: got %v want 4200s", sum.EndTime)
	}
	if sum.Depleted {
		t.Error("cell should survive the reference pulse profile")
	}
	if sum.RemainingJ >= cfg.Cell.InitialEnergyJ {
		t.Errorf("no energy drained: %v", sum.RemainingJ)
	}
	if sum.DrainedAh <= 0 {
		t.Errorf("drained capacity: %v", sum.DrainedAh)
	}
	if sum.Fraction <= 0 || sum.Fraction >= 1 {
		t.Errorf("fraction out of range: %v", sum.Fraction)
	}
	if sum.VoltageV <= cfg.Cell.MinVoltageV || sum.VoltageV > cfg.Cell.FullVoltageV {
		t.Errorf("voltage out of range: %v", sum.VoltageV)
	}
}

func TestServiceRunWritesJSONLTrace(t *testing.T) {
	cfg := testConfig(t)
	cfg.Scenario.StopAfterSeconds = 100
	cfg.Scenario.SampleIntervalSeconds = 10
	cfg.Scenario.Steps = []config.LoadStep{{AtSeconds: 0, CurrentA: 1}}
	cfg.Metrics.JSONLEnabled = true
	cfg.Metrics.JSONLPath = filepath.Join(t.TempDir(), "trace.jsonl")

	svc, err := New(cfg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if err := svc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(cfg.Metrics.JSONLPath)
	if err != nil {
		t.Fatalf("read trace: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("trace file is empty")
	}
}

func TestServiceRunDepletes(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cell.InitialEnergyJ = 20
	cfg.Scenario.StopAfterSeconds = 600
	cfg.Scenario.SampleIntervalSeconds = 10
	cfg.Scenario.Steps = []config.LoadStep{{AtSeconds: 0, CurrentA: 2}}

	svc, err := New(cfg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	defer svc.Close()

	sum, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !sum.Depleted {
		t.Fatal("expected depletion with a 20 J cell under 2 A")
	}
}

func TestServiceRunHonorsContext(t *testing.T) {
	cfg := testConfig(t)
	svc, err := New(cfg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	defer svc.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.Run(ctx); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}

func TestServiceSamplesBus(t *testing.T) {
	cfg := testConfig(t)
	cfg.Scenario.StopAfterSeconds = 60
	cfg.Scenario.SampleIntervalSeconds = 20
	cfg.Scenario.Steps = []config.LoadStep{{AtSeconds: 0, CurrentA: 1}}

	svc, err := New(cfg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	defer svc.Close()

	samples := svc.Samples()
	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	n := 0
	for s := range samples {
		if s.RunID != svc.RunID() {
			t.Errorf("sample run id: got %q want %q", s.RunID, svc.RunID())
		}
		n++
	}
	if n == 0 {
		t.Fatal("no samples delivered on the bus")
	}
}
