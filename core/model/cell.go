package model

import (
	"fmt"
	"time"
)

// CellParameters describes a single Li-ion cell: the polarization curve
// fit constants, the RV recovery model shape, and the bookkeeping
// settings of the energy tracker. Parameters are immutable once the
// cell is built.
type CellParameters struct {
	// InitialEnergyJ is the energy stored in the cell at full charge, in joules.
	InitialEnergyJ float64
	// EFullV is the fully charged cell voltage.
	EFullV float64
	// ENomV is the cell voltage at the end of the nominal zone.
	ENomV float64
	// EExpV is the cell voltage at the end of the exponential zone.
	EExpV float64
	// QRatedAh is the rated capacity of the cell in ampere-hours.
	QRatedAh float64
	// QNomAh is the capacity at the end of the nominal zone.
	QNomAh float64
	// QExpAh is the capacity at the end of the exponential zone.
	QExpAh float64
	// InternalResistanceOhm is the ohmic resistance of the cell.
	InternalResistanceOhm float64
	// TypCurrentA is the discharge current used when fitting the curve.
	TypCurrentA float64
	// MinVoltageV marks the cell depleted once the terminal voltage
	// falls to or below it.
	MinVoltageV float64
	// LowBatteryThreshold marks the cell depleted once the remaining
	// energy falls to or below this fraction of InitialEnergyJ.
	LowBatteryThreshold float64
	// UpdateInterval is the period between energy re-evaluations.
	UpdateInterval time.Duration
	// Beta is the RV model shape parameter.
	Beta float64
	// Terms is the number of terms kept in the RV series truncation.
	Terms int
}

// DefaultCellParameters returns the Panasonic CGR18650DA fit used to
// validate the model against the manufacturer discharge curves.
func DefaultCellParameters() CellParameters {
	return CellParameters{
		InitialEnergyJ:        31752.0,
		EFullV:                4.05,
		ENomV:                 3.6,
		EExpV:                 3.6,
		QRatedAh:              2.45,
		QNomAh:                1.1,
		QExpAh:                1.2,
		InternalResistanceOhm: 0.083,
		TypCurrentA:           2.33,
		MinVoltageV:           3.3,
		LowBatteryThreshold:   0.10,
		UpdateInterval:        time.Second,
		Beta:                  0.637,
		Terms:                 10,
	}
}

// Validate checks that the parameter set is usable. A cell must not be
// built from parameters that fail validation.
func (p CellParameters) Validate() error {
	if p.InitialEnergyJ <= 0 {
		return fmt.Errorf("initial energy must be positive, got %v", p.InitialEnergyJ)
	}
	if p.EFullV <= 0 || p.ENomV <= 0 || p.EExpV <= 0 {
		return fmt.Errorf("cell voltages must be positive")
	}
	if p.QRatedAh <= 0 || p.QNomAh <= 0 || p.QExpAh <= 0 {
		return fmt.Errorf("cell capacities must be positive")
	}
	if p.InternalResistanceOhm < 0 {
		return fmt.Errorf("internal resistance must not be negative, got %v", p.InternalResistanceOhm)
	}
	if p.MinVoltageV < 0 {
		return fmt.Errorf("minimum voltage must not be negative, got %v", p.MinVoltageV)
	}
	if p.LowBatteryThreshold < 0 || p.LowBatteryThreshold > 1 {
		return fmt.Errorf("low battery threshold must be in [0,1], got %v", p.LowBatteryThreshold)
	}
	if p.UpdateInterval <= 0 {
		return fmt.Errorf("update interval must be positive, got %v", p.UpdateInterval)
	}
	if p.Beta <= 0 {
		return fmt.Errorf("beta must be positive, got %v", p.Beta)
	}
	if p.Terms < 1 {
		return fmt.Errorf("series term count must be at least 1, got %d", p.Terms)
	}
	return nil
}
