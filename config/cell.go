package config

import (
	"fmt"
	"time"

	"github.com/kilianp07/battsim/core/model"
)

// CellConfig describes the simulated cell. Unset fields fall back to
// the Panasonic CGR18650DA reference fit.
type CellConfig struct {
	InitialEnergyJ        float64 `json:"initial_energy_j"`
	FullVoltageV          float64 `json:"full_voltage_v"`
	NominalVoltageV       float64 `json:"nominal_voltage_v"`
	ExpVoltageV           float64 `json:"exp_voltage_v"`
	RatedCapacityAh       float64 `json:"rated_capacity_ah"`
	NominalCapacityAh     float64 `json:"nominal_capacity_ah"`
	ExpCapacityAh         float64 `json:"exp_capacity_ah"`
	InternalResistanceOhm float64 `json:"internal_resistance_ohm"`
	TypCurrentA           float64 `json:"typ_current_a"`
	MinVoltageV           float64 `json:"min_voltage_v"`
	LowBatteryThreshold   float64 `json:"low_battery_threshold"`
	UpdateIntervalSeconds float64 `json:"update_interval_seconds"`
	Beta                  float64 `json:"beta"`
	Terms                 int     `json:"terms"`
}

// SetDefaults fills unset fields from the reference parameter set.
func (c *CellConfig) SetDefaults() {
	def := model.DefaultCellParameters()
	if c.InitialEnergyJ == 0 {
		c.InitialEnergyJ = def.InitialEnergyJ
	}
	if c.FullVoltageV == 0 {
		c.FullVoltageV = def.EFullV
	}
	if c.NominalVoltageV == 0 {
		c.NominalVoltageV = def.ENomV
	}
	if c.ExpVoltageV == 0 {
		c.ExpVoltageV = def.EExpV
	}
	if c.RatedCapacityAh == 0 {
		c.RatedCapacityAh = def.QRatedAh
	}
	if c.NominalCapacityAh == 0 {
		c.NominalCapacityAh = def.QNomAh
	}
	if c.ExpCapacityAh == 0 {
		c.ExpCapacityAh = def.QExpAh
	}
	if c.InternalResistanceOhm == 0 {
		c.InternalResistanceOhm = def.InternalResistanceOhm
	}
	if c.TypCurrentA == 0 {
		c.TypCurrentA = def.TypCurrentA
	}
	if c.MinVoltageV == 0 {
		c.MinVoltageV = def.MinVoltageV
	}
	if c.LowBatteryThreshold == 0 {
		c.LowBatteryThreshold = def.LowBatteryThreshold
	}
	if c.UpdateIntervalSeconds == 0 {
		c.UpdateIntervalSeconds = def.UpdateInterval.Seconds()
	}
	if c.Beta == 0 {
		c.Beta = def.Beta
	}
	if c.Terms == 0 {
		c.Terms = def.Terms
	}
}

// Parameters converts the section into validated model parameters.
func (c CellConfig) Parameters() model.CellParameters {
	return model.CellParameters{
		InitialEnergyJ:        c.InitialEnergyJ,
		EFullV:                c.FullVoltageV,
		ENomV:                 c.NominalVoltageV,
		EExpV:                 c.ExpVoltageV,
		QRatedAh:              c.RatedCapacityAh,
		QNomAh:                c.NominalCapacityAh,
		QExpAh:                c.ExpCapacityAh,
		InternalResistanceOhm: c.InternalResistanceOhm,
		TypCurrentA:           c.TypCurrentA,
		MinVoltageV:           c.MinVoltageV,
		LowBatteryThreshold:   c.LowBatteryThreshold,
		UpdateInterval:        time.Duration(c.UpdateIntervalSeconds * float64(time.Second)),
		Beta:                  c.Beta,
		Terms:                 c.Terms,
	}
}

// Validate checks the section via the model validation.
func (c CellConfig) Validate() error {
	if err := c.Parameters().Validate(); err != nil {
		return fmt.Errorf("cell: %w", err)
	}
	return nil
}
