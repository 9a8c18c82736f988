// board/lowpower.go
package board

import (
	"nodeboard-go/critical"
	"nodeboard-go/types"
)

// EnterStop powers the node down to its retained-RAM deep sleep. All
// register-level teardown happens before the halt; the call blocks until a
// hardware wake source fires and returns to the caller that entered it.
// ExitStop must run before application logic resumes.
func (b *Board) EnterStop() {
	var tok critical.Token
	b.cs.Begin(&tok)
	b.Deinit()
	b.cs.End(&tok)

	b.d.Power.DisablePVD()
	b.d.Power.ClearWakeFlag()
	b.d.Power.EnableUltraLowPower()
	b.d.Power.EnableFastWakeUp()

	b.mode = types.ModeStop
	b.d.Power.EnterStop(true) // regulator in low-power mode; blocks until wake
}

// ExitStop rebuilds the peripherals after the halt returns. It is the
// resume branch of Init under a critical section, and is idempotent with
// respect to it.
func (b *Board) ExitStop() {
	var tok critical.Token
	b.cs.Begin(&tok)
	b.Init()
	b.cs.End(&tok)
	b.stopCycles++
}

// EnterSleep halts only the core with the main regulator on; any enabled
// interrupt wakes it. No peripheral teardown or rebuild is needed.
func (b *Board) EnterSleep() {
	b.mode = types.ModeSleep
	b.d.Power.EnterSleep()
	b.mode = types.ModeRun
}

// LowPowerHandler is the idle hook: it enters the deepest permitted mode.
// Interrupts are masked first so an event arriving now stays pending and
// aborts the halt instead of being lost.
func (b *Board) LowPowerHandler() {
	state := b.d.IRQ.Disable()
	b.lpm.EnterLowPower()
	b.d.IRQ.Restore(state)
}
