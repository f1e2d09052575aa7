package energy

import "testing"

type fakeSource struct {
	refreshes int
	voltage   float64
}

func (f *fakeSource) Refresh()               { f.refreshes++ }
func (f *fakeSource) SupplyVoltage() float64 { return f.voltage }

func TestSimpleDeviceRefreshesBeforeLoadChange(t *testing.T) {
	src := &fakeSource{voltage: 3.7}
	dev := NewSimpleDevice(src)
	if dev.CurrentA() != 0 {
		t.Fatalf("new device must draw nothing, got %v", dev.CurrentA())
	}
	dev.SetCurrentA(1.5)
	if src.refreshes != 1 {
		t.Fatalf("source not refreshed on load change: %d", src.refreshes)
	}
	if dev.CurrentA() != 1.5 {
		t.Fatalf("current = %v", dev.CurrentA())
	}
}

func TestObserverFunc(t *testing.T) {
	called := 0
	var obs DepletionObserver = ObserverFunc(func(DepletionEvent) { called++ })
	obs.OnCellDepleted(DepletionEvent{})
	if called != 1 {
		t.Fatalf("observer func not invoked")
	}
}
