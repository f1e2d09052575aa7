package metrics

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	coremetrics "github.com/kilianp07/battsim/core/metrics"
	"github.com/kilianp07/battsim/core/sim"
)

func TestJSONLSinkRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.jsonl")
	sink, err := NewJSONLSink(path)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}

	for i := 1; i <= 3; i++ {
		sample := coremetrics.CellSample{
			RunID:      "run1",
			Time:       sim.Time(time.Duration(i) * 20 * time.Second),
			RemainingJ: 31752 - float64(i)*100,
			VoltageV:   4.0,
			LoadA:      1,
		}
		if err := sink.RecordCellSample(sample); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	if err := sink.RecordDepletion(coremetrics.DepletionRecord{RunID: "run1", Time: sim.Time(time.Hour)}); err != nil {
		t.Fatalf("record depletion: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = f.Close() }()

	var recs []jsonlRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var r jsonlRecord
		if err := json.Unmarshal(scanner.Bytes(), &r); err != nil {
			t.Fatalf("bad line: %v", err)
		}
		recs = append(recs, r)
	}
	if len(recs) != 4 {
		t.Fatalf("expected 4 records got %d", len(recs))
	}
	if recs[0].SimSeconds != 20 || recs[0].RemainingJ != 31652 {
		t.Fatalf("bad first record: %+v", recs[0])
	}
	if !recs[3].Depleted {
		t.Fatalf("last record should be the depletion marker: %+v", recs[3])
	}
}
