package battery

import (
	"testing"
)

func TestAccumulatedConstantLoadClosedForm(t *testing.T) {
	// A single constant load from t=0 must match the single-segment
	// closed form load * A(t, t, 0) exactly.
	const beta, load = 0.637, 2.5
	end := minutes(30)

	integ := NewIntegrator(0, beta, 10)
	got := integ.Accumulated(load, end)
	want := load * KernelA(end, end, 0, beta, 10)
	if got != want {
		t.Fatalf("alpha=%v want %v", got, want)
	}
}

func TestAccumulatedMonotoneUnderConstantLoad(t *testing.T) {
	integ := NewIntegrator(0, 0.637, 10)
	prev := 0.0
	for m := 1; m <= 30; m++ {
		alpha := integ.Accumulated(1, minutes(float64(m)))
		if alpha <= prev {
			t.Fatalf("alpha not increasing at minute %d: %v <= %v", m, alpha, prev)
		}
		prev = alpha
	}
}

func TestAccumulatedZeroLoad(t *testing.T) {
	integ := NewIntegrator(0, 0.637, 10)
	if alpha := integ.Accumulated(0, minutes(10)); alpha != 0 {
		t.Fatalf("zero load must accrue nothing, got %v", alpha)
	}
}

func TestAccumulatedRecoveryEffect(t *testing.T) {
	// Two scenarios delivering the same 60 ampere-minutes by minute 60:
	// (a) 1 A constant, (b) 2 A pulses with equal rests. The pulsed
	// profile must accrue less effective discharge thanks to recovery
	// during the rest periods.
	const beta = 0.637

	constant := NewIntegrator(0, beta, 10)
	alphaConstant := constant.Accumulated(1, minutes(60))

	pulsed := NewIntegrator(0, beta, 10)
	pulsed.Accumulated(2, minutes(0))
	pulsed.Accumulated(2, minutes(15))
	pulsed.Accumulated(0, minutes(15))
	pulsed.Accumulated(0, minutes(30))
	pulsed.Accumulated(2, minutes(30))
	pulsed.Accumulated(2, minutes(45))
	pulsed.Accumulated(0, minutes(45))
	alphaPulsed := pulsed.Accumulated(0, minutes(60))

	if alphaPulsed >= alphaConstant {
		t.Fatalf("expected pulsed < constant: pulsed=%v constant=%v", alphaPulsed, alphaConstant)
	}
}

func TestAccumulatedRecordsBeforeEvaluating(t *testing.T) {
	integ := NewIntegrator(0, 0.637, 10)
	integ.Accumulated(1, minutes(5))
	if integ.History().Segments() != 1 {
		t.Fatalf("sample not recorded")
	}
	integ.Accumulated(2, minutes(6))
	if integ.History().Segments() != 2 {
		t.Fatalf("load change not recorded")
	}
}
