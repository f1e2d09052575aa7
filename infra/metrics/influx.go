package metrics

import (
	"context"
	"math"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/kilianp07/battsim/core/logger"
	coremetrics "github.com/kilianp07/battsim/core/metrics"
	infralogger "github.com/kilianp07/battsim/infra/logger"
)

// InfluxSink writes cell samples to an InfluxDB instance using the
// official client. Points carry the simulated time as a field and the
// wall-clock write time as the point timestamp.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	client := influxdb2.NewClient(url, token)
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      infralogger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.Sink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordCellSample writes the sample as a cell_sample point.
func (s *InfluxSink) RecordCellSample(sample coremetrics.CellSample) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("cell_sample").
		AddTag("run_id", sample.RunID).
		AddField("sim_seconds", round3(sample.Time.Seconds())).
		AddField("remaining_j", round3(sample.RemainingJ)).
		AddField("voltage_v", round3(sample.VoltageV)).
		AddField("drained_ah", round3(sample.DrainedAh)).
		AddField("load_a", round3(sample.LoadA)).
		SetTime(time.Now())
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordDepletion writes a cell_depleted point.
func (s *InfluxSink) RecordDepletion(rec coremetrics.DepletionRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("cell_depleted").
		AddTag("run_id", rec.RunID).
		AddField("sim_seconds", round3(rec.Time.Seconds())).
		AddField("remaining_j", round3(rec.RemainingJ)).
		AddField("voltage_v", round3(rec.VoltageV)).
		AddField("drained_ah", round3(rec.DrainedAh)).
		SetTime(time.Now())
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
