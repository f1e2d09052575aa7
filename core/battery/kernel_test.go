package battery

import (
	"math"
	"testing"
	"time"

	"github.com/kilianp07/battsim/core/sim"
)

func minutes(m float64) sim.Time {
	return sim.Time(time.Duration(m * float64(time.Minute)))
}

func TestKernelLargeBetaReducesToSegmentLength(t *testing.T) {
	// With a huge beta the exponential terms vanish and the kernel
	// degenerates to the plain segment length in minutes.
	got := KernelA(minutes(10), minutes(5), 0, 50, 10)
	if math.Abs(got-5) > 1e-9 {
		t.Fatalf("expected ~5 got %v", got)
	}
}

func TestKernelOngoingSegmentExceedsLength(t *testing.T) {
	// The open segment carries a positive transient: the effective
	// discharge observed at t is larger than the raw amp-minutes.
	got := KernelA(minutes(10), minutes(10), 0, 0.637, 10)
	if got <= 10 {
		t.Fatalf("expected kernel > 10 got %v", got)
	}
}

func TestKernelOldSegmentRecovers(t *testing.T) {
	// Long after the segment ended its contribution decays back to the
	// raw segment length: the transient charge became available again.
	fresh := KernelA(minutes(6), minutes(5), 0, 0.637, 10)
	old := KernelA(minutes(500), minutes(5), 0, 0.637, 10)
	if old >= fresh {
		t.Fatalf("expected recovery: old=%v fresh=%v", old, fresh)
	}
	if math.Abs(old-5) > 1e-6 {
		t.Fatalf("expected old contribution ~5 got %v", old)
	}
}

func TestKernelTermCount(t *testing.T) {
	// Every extra term adds a positive contribution for the open
	// segment, so a longer truncation strictly increases the result.
	ten := KernelA(minutes(10), minutes(10), 0, 0.637, 10)
	hundred := KernelA(minutes(10), minutes(10), 0, 0.637, 100)
	if hundred <= ten {
		t.Fatalf("expected more terms to increase kernel: 10=%v 100=%v", ten, hundred)
	}
}

func TestKernelDeterministic(t *testing.T) {
	a := KernelA(minutes(30), minutes(12), minutes(3), 0.637, 10)
	b := KernelA(minutes(30), minutes(12), minutes(3), 0.637, 10)
	if a != b {
		t.Fatalf("kernel not deterministic: %v != %v", a, b)
	}
}
