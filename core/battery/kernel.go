package battery

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/kilianp07/battsim/core/sim"
)

// KernelA evaluates the recovery-corrected discharge contribution of the
// load segment [sk1, sk] observed from time t:
//
//	A = δ + 2·Σ_{m=1..terms} [exp(−β²m²Δ1) − exp(−β²m²Δ2)] / (β²m²)
//
// with Δ1 = t−sk, Δ2 = t−sk1 and δ = sk−sk1, all in minutes. The series
// is a finite truncation of the RV diffusion solution; the truncation
// error is part of the model, callers wanting more precision must raise
// terms. beta must be positive, enforced at configuration time.
func KernelA(t, sk, sk1 sim.Time, beta float64, terms int) float64 {
	firstDelta := t.Minutes() - sk.Minutes()
	secondDelta := t.Minutes() - sk1.Minutes()
	delta := sk.Minutes() - sk1.Minutes()

	series := make([]float64, terms)
	for m := 1; m <= terms; m++ {
		square := beta * beta * float64(m) * float64(m)
		series[m-1] = (math.Exp(-square*firstDelta) - math.Exp(-square*secondDelta)) / square
	}
	return delta + 2*floats.Sum(series)
}
