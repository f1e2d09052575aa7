package battery

import (
	"fmt"

	"github.com/kilianp07/battsim/core/energy"
	"github.com/kilianp07/battsim/core/logger"
	"github.com/kilianp07/battsim/core/model"
	"github.com/kilianp07/battsim/core/sim"
)

// Cell tracks the remaining energy and terminal voltage of a single
// Li-ion cell under the load of its attached devices. It re-evaluates
// itself periodically on the scheduler and once more on every external
// read or load change, so queries never observe stale state.
//
// A cell is Active until either depletion trigger fires: remaining
// energy at or below the low-battery fraction, or terminal voltage at
// or below the minimum threshold. Depletion is terminal; observers are
// notified exactly once, in registration order, and the periodic update
// stops. All methods must run on the scheduler's goroutine.
type Cell struct {
	params model.CellParameters
	sched  *sim.Scheduler
	log    logger.Logger

	sources   []energy.LoadSource
	observers []energy.DepletionObserver

	integrator  *Integrator
	remainingJ  float64
	drainedAh   float64
	voltageV    float64
	lastAlpha   float64
	lastUpdate  sim.Time
	updateEvent *sim.Event
	depleted    bool
}

// NewCell validates the parameters and builds an inactive cell. Call
// Start to schedule the periodic re-evaluation.
func NewCell(params model.CellParameters, sched *sim.Scheduler, log logger.Logger) (*Cell, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("cell parameters: %w", err)
	}
	if sched == nil {
		return nil, fmt.Errorf("cell requires a scheduler")
	}
	if log == nil {
		log = logger.Nop{}
	}
	return &Cell{
		params:     params,
		sched:      sched,
		log:        log,
		integrator: NewIntegrator(sched.Now(), params.Beta, params.Terms),
		remainingJ: params.InitialEnergyJ,
		voltageV:   params.EFullV,
		lastUpdate: sched.Now(),
	}, nil
}

// AttachDevice registers a load source. The cell sums the current of
// all attached sources on every re-evaluation.
func (c *Cell) AttachDevice(src energy.LoadSource) {
	c.sources = append(c.sources, src)
}

// AddObserver registers a depletion observer. Observers are notified in
// registration order.
func (c *Cell) AddObserver(obs energy.DepletionObserver) {
	c.observers = append(c.observers, obs)
}

// Start performs the first re-evaluation and schedules the periodic
// update.
func (c *Cell) Start() { c.Refresh() }

// Refresh re-evaluates the cell at the current simulation time. It
// cancels any pending periodic update first and reschedules one
// afterwards unless a depletion trigger fired. Refreshing a depleted
// cell is a no-op.
func (c *Cell) Refresh() {
	if c.depleted || c.sched.Stopped() {
		return
	}

	c.updateEvent.Cancel()

	c.calculateRemainingEnergy()
	c.lastUpdate = c.sched.Now()

	if c.remainingJ <= c.params.LowBatteryThreshold*c.params.InitialEnergyJ {
		c.handleDepleted()
		return
	}
	if c.voltageV <= c.params.MinVoltageV {
		c.handleDepleted()
		return
	}

	c.updateEvent = c.sched.Schedule(c.params.UpdateInterval, c.Refresh)
}

// RemainingEnergy refreshes the cell and returns the remaining energy
// in joules. Reading a depleted cell returns the clamped value.
func (c *Cell) RemainingEnergy() float64 {
	c.Refresh()
	return c.remainingJ
}

// EnergyFraction refreshes the cell and returns the remaining energy as
// a fraction of the initial energy.
func (c *Cell) EnergyFraction() float64 {
	c.Refresh()
	return c.remainingJ / c.params.InitialEnergyJ
}

// SupplyVoltage returns the terminal voltage computed at the last
// re-evaluation.
func (c *Cell) SupplyVoltage() float64 { return c.voltageV }

// DrainedCapacityAh returns the cumulative charge removed from the
// cell in ampere-hours.
func (c *Cell) DrainedCapacityAh() float64 { return c.drainedAh }

// InitialEnergy returns the configured initial energy in joules.
func (c *Cell) InitialEnergy() float64 { return c.params.InitialEnergyJ }

// Depleted reports whether a depletion trigger has fired.
func (c *Cell) Depleted() bool { return c.depleted }

// TotalCurrentA sums the instantaneous current of all attached devices.
func (c *Cell) TotalCurrentA() float64 {
	total := 0.0
	for _, src := range c.sources {
		total += src.CurrentA()
	}
	return total
}

func (c *Cell) calculateRemainingEnergy() {
	totalCurrentA := c.TotalCurrentA()
	now := c.sched.Now()

	alpha := c.integrator.Accumulated(totalCurrentA, now)

	energyToDecreaseJ := (alpha - c.lastAlpha) * c.voltageV
	if c.remainingJ < energyToDecreaseJ {
		// energy never goes below zero
		c.remainingJ = 0
	} else {
		c.remainingJ -= energyToDecreaseJ
		c.drainedAh = alpha / 60
	}

	c.voltageV = TerminalVoltage(c.params, c.drainedAh, totalCurrentA)
	c.lastAlpha = alpha

	c.log.Debugw("cell updated", map[string]any{
		"time":        now.String(),
		"remaining_j": c.remainingJ,
		"voltage_v":   c.voltageV,
		"drained_ah":  c.drainedAh,
		"load_a":      totalCurrentA,
	})
}

func (c *Cell) handleDepleted() {
	c.depleted = true
	c.log.Infof("cell depleted at %v: remaining=%.3fJ voltage=%.3fV", c.sched.Now(), c.remainingJ, c.voltageV)
	ev := energy.DepletionEvent{
		Time:       c.sched.Now(),
		RemainingJ: c.remainingJ,
		VoltageV:   c.voltageV,
		DrainedAh:  c.drainedAh,
	}
	for _, obs := range c.observers {
		obs.OnCellDepleted(ev)
	}
}
