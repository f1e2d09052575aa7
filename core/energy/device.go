package energy

import "github.com/kilianp07/battsim/core/sim"

// Source is the view a device has of the energy source powering it.
type Source interface {
	// Refresh forces a re-evaluation of the source state at the current
	// simulation time.
	Refresh()
	// SupplyVoltage returns the terminal voltage computed at the last
	// re-evaluation.
	SupplyVoltage() float64
}

// LoadSource reports the instantaneous current a consumer draws.
type LoadSource interface {
	CurrentA() float64
}

// DepletionEvent is delivered to observers when a source is depleted.
type DepletionEvent struct {
	Time       sim.Time
	RemainingJ float64
	VoltageV   float64
	DrainedAh  float64
}

// DepletionObserver is notified exactly once when the source it is
// registered on becomes depleted.
type DepletionObserver interface {
	OnCellDepleted(ev DepletionEvent)
}

// ObserverFunc adapts a function to the DepletionObserver interface.
type ObserverFunc func(DepletionEvent)

func (f ObserverFunc) OnCellDepleted(ev DepletionEvent) { f(ev) }

// SimpleDevice draws a constant, settable current from its source.
type SimpleDevice struct {
	source   Source
	currentA float64
}

// NewSimpleDevice attaches a zero-load device to the given source.
func NewSimpleDevice(source Source) *SimpleDevice {
	return &SimpleDevice{source: source}
}

// CurrentA implements LoadSource.
func (d *SimpleDevice) CurrentA() float64 { return d.currentA }

// SetCurrentA changes the current drawn by the device. The source is
// refreshed with the old load first so the open segment of its load
// history is sealed at the time of the change.
func (d *SimpleDevice) SetCurrentA(currentA float64) {
	if d.source != nil {
		d.source.Refresh()
	}
	d.currentA = currentA
}
