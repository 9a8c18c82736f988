// board/calibrate_test.go
package board

import (
	"testing"

	"nodeboard-go/types"
)

func TestCalibrateGuard(t *testing.T) {
	h := newHarness(types.BatteryPower)

	h.b.CalibrateWakeup()
	h.b.CalibrateWakeup()

	if h.rtc.oneShots != 1 {
		t.Fatalf("timer armed %d times, want 1", h.rtc.oneShots)
	}
	if !h.b.Calibrated() {
		t.Fatal("not calibrated after completion")
	}
	if len(h.rtc.recorded) != 1 {
		t.Fatalf("wake latency recorded %d times", len(h.rtc.recorded))
	}
	if h.rtc.recorded[0] < 0 {
		t.Errorf("negative wake latency %v", h.rtc.recorded[0])
	}
}
