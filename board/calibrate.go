// board/calibrate.go
package board

import (
	"runtime"
	"sync/atomic"
	"time"

	"nodeboard-go/x/mathx"
)

// calibrationSpan is the fixed one-shot duration used to measure how long
// the node takes to resume from stop mode.
const calibrationSpan = 1000 * time.Millisecond

// calibration tracks the one-shot wake-latency measurement. done is
// written from the timer's completion context and read by the busy-wait.
type calibration struct {
	armed bool
	done  atomic.Bool
}

// Calibrated reports whether the wake-latency measurement has completed.
func (b *Board) Calibrated() bool { return b.cal.done.Load() }

// CalibrateWakeup measures the stop-mode wake latency once per power
// cycle. It arms a single one-shot timer and busy-waits on its completion
// flag, blocking the caller for the full span; the RTC records the result
// for scheduling future wake events. A second call is a no-op.
func (b *Board) CalibrateWakeup() {
	if b.cal.done.Load() || b.cal.armed {
		return
	}
	b.cal.armed = true

	start := time.Now()
	b.d.RTC.StartOneShot(calibrationSpan, func() {
		overshoot := time.Since(start) - calibrationSpan
		b.d.RTC.RecordWakeLatency(mathx.Max(overshoot, 0))
		b.cal.done.Store(true)
	})

	for !b.cal.done.Load() {
		runtime.Gosched()
	}
}
