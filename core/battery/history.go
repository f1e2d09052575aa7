package battery

import "github.com/kilianp07/battsim/core/sim"

// noLoad is the sentinel meaning no sample has been recorded yet. Any
// real load, including zero, differs from it and opens the first segment.
const noLoad = -1.0

// History records the piecewise-constant load applied to a cell. The
// boundary sequence always carries one more entry than the load
// sequence: segment i spans boundaries[i-1]..boundaries[i] and drew
// loads[i-1] amperes. The last boundary tracks the most recent sample
// time, so the open segment keeps extending until the load changes.
type History struct {
	loads        []float64
	boundaries   []sim.Time
	previousLoad float64
	lastSample   sim.Time
}

// NewHistory starts an empty history whose first boundary is the given
// creation time.
func NewHistory(start sim.Time) *History {
	return &History{
		boundaries:   []sim.Time{start},
		previousLoad: noLoad,
		lastSample:   start,
	}
}

// Record notes the instantaneous load at time t. A load differing from
// the previous sample (exact comparison, no tolerance) seals the open
// segment at the last sample time and opens a new one; an unchanged
// load only advances the open segment's end. Record must be called
// before every discharge evaluation so the boundaries reflect the
// latest observation.
func (h *History) Record(loadA float64, t sim.Time) {
	if loadA != h.previousLoad {
		h.loads = append(h.loads, loadA)
		h.previousLoad = loadA
		h.boundaries[len(h.boundaries)-1] = h.lastSample
		h.boundaries = append(h.boundaries, t)
	} else if len(h.boundaries) > 0 {
		h.boundaries[len(h.boundaries)-1] = t
	}
	h.lastSample = t
}

// Segments returns the number of recorded load segments.
func (h *History) Segments() int { return len(h.loads) }

// Boundaries returns the number of recorded segment boundaries.
func (h *History) Boundaries() int { return len(h.boundaries) }
