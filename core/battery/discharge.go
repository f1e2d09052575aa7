package battery

import "github.com/kilianp07/battsim/core/sim"

// Integrator combines a load history with the RV kernel to produce the
// cumulative effective discharge. The result replaces a naive
// current×time integral: bursts of high current followed by rest drain
// less effective capacity than the same charge at constant current.
type Integrator struct {
	history *History
	beta    float64
	terms   int
}

// NewIntegrator builds an integrator over a fresh history starting at
// the given time. beta and terms come pre-validated from the cell
// parameters.
func NewIntegrator(start sim.Time, beta float64, terms int) *Integrator {
	return &Integrator{history: NewHistory(start), beta: beta, terms: terms}
}

// History exposes the underlying load history.
func (d *Integrator) History() *History { return d.history }

// Accumulated records the instantaneous load and returns alpha(t), the
// effective discharge accrued so far, in ampere-minutes. Each recorded
// segment contributes its load weighted by the kernel evaluated from t.
func (d *Integrator) Accumulated(loadA float64, t sim.Time) float64 {
	d.history.Record(loadA, t)

	h := d.history
	alpha := 0.0
	if len(h.boundaries) == 1 {
		// constant load since the first sample
		if len(h.loads) > 0 {
			alpha = h.loads[0] * KernelA(t, t, 0, d.beta, d.terms)
		}
		return alpha
	}
	for i := 1; i < len(h.boundaries); i++ {
		alpha += h.loads[i-1] * KernelA(t, h.boundaries[i], h.boundaries[i-1], d.beta, d.terms)
	}
	return alpha
}
