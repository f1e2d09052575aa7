package battery

import (
	"math"

	"github.com/kilianp07/battsim/core/model"
)

// TerminalVoltage maps the drained capacity and the instantaneous
// current to the cell terminal voltage via the empirical four-parameter
// polarization curve fit.
//
// Precondition: drainedAh < p.QRatedAh. The qRated/(qRated−drained)
// term diverges at the rated capacity; the Cell tracker's zero-floor
// rule keeps callers below it, this function does not guard it.
func TerminalVoltage(p model.CellParameters, drainedAh, currentA float64) float64 {
	// empirical factors
	a := p.EFullV - p.EExpV
	b := 3 / p.QExpAh

	// slope of the polarization curve
	k := math.Abs((p.EFullV - p.ENomV + a*(math.Exp(-b*p.QNomAh)-1)) * (p.QRatedAh - p.QNomAh) / p.QNomAh)

	// constant voltage term
	e0 := p.EFullV + k + p.InternalResistanceOhm*p.TypCurrentA - a

	// open-circuit voltage at the present state of charge
	e := e0 - k*p.QRatedAh/(p.QRatedAh-drainedAh) + a*math.Exp(-b*drainedAh)

	return e - p.InternalResistanceOhm*currentA
}
