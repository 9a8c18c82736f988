// board/board.go
//
// Package board is the power-mode sequencer: the single owner of the
// MCU-level lifecycle. It decides on every entry whether a cold full
// initialization or the reduced post-stop reconfiguration runs, and it is
// the only caller of the clock controller and the halt instructions.
package board

import (
	"time"

	"nodeboard-go/clocks"
	"nodeboard-go/console"
	"nodeboard-go/critical"
	"nodeboard-go/lpm"
	"nodeboard-go/mcu"
	"nodeboard-go/types"
)

// ---------------- Peripheral contracts ----------------

// Peripheral is the init/deinit lifecycle each collaborator exposes.
// init is safe to repeat with the same configuration; deinit leaves the
// peripheral's pins in their minimum-leakage state.
type Peripheral interface {
	Init() error
	Deinit() error
}

// ADC adds channel reads for battery telemetry.
type ADC interface {
	Peripheral
	ReadChannel(ch uint8) (uint16, error)
}

// RadioIO is the transceiver board-I/O lifecycle (see drivers/sx1272).
type RadioIO interface {
	IoInit() error
	IoDeinit() error
	DbgInit()
	TcxoInit()
}

// RTC is the timekeeping collaborator: it provides the calibration timer
// and records the measured wake latency for scheduling future wake events.
type RTC interface {
	Init() error
	RecordWakeLatency(d time.Duration)
	StartOneShot(d time.Duration, fn func())
}

// Watchdog is restarted on every initialization, cold or resumed.
type Watchdog interface {
	Start() error
}

// Pin is the board-level GPIO surface for LEDs and pin parking.
type Pin interface {
	ConfigureOutput(initial bool)
	ConfigureInputPullDown()
	ConfigureAnalog()
	Set(level bool)
}

// PinFactory resolves configured pin numbers.
type PinFactory interface {
	ByNumber(n int) (Pin, bool)
}

// ---------------- Wiring ----------------

// Deps is the full collaborator set, injected by the platform package.
type Deps struct {
	Clocks   *clocks.Controller
	Power    mcu.Power
	IRQ      mcu.IRQ
	Pins     PinFactory
	ADC      ADC
	RadioBus Peripheral // SPI master feeding the transceiver
	Radio    RadioIO
	RTC      RTC
	Watchdog Watchdog
	Console  *console.Console

	// Source classifies the supply; consulted on every policy decision.
	Source func() types.PowerSource

	// ID returns the device-unique identification words.
	ID func() [3]uint32

	// Debugger reports whether a debugger is attached; when true the
	// debug pins stay configured and debug clocks survive sleep.
	Debugger bool
}

// Board holds the sequencer's explicit state. The lifecycle and
// calibration flags survive stop mode (RAM is retained) and reset only
// with power loss.
type Board struct {
	d   Deps
	cfg types.BoardConfig

	cs  *critical.Section
	lpm *lpm.Manager

	lifecycle  types.Lifecycle
	mode       types.PowerMode
	stopCycles uint32

	cal calibration

	batteryMilliV uint16
}

func New(d Deps, cfg types.BoardConfig) *Board {
	b := &Board{
		d:             d,
		cfg:           cfg,
		cs:            critical.New(d.IRQ),
		batteryMilliV: batteryMaxLevelMilliV,
	}
	b.lpm = lpm.New(lpm.Hooks{
		EnterSleep: b.EnterSleep,
		EnterStop: func() {
			b.EnterStop()
			b.ExitStop()
		},
		EnterOff: d.Power.EnterStandby,
	})
	return b
}

// LPM exposes the low-power policy so subsystems can veto modes.
func (b *Board) LPM() *lpm.Manager { return b.lpm }

func (b *Board) Lifecycle() types.Lifecycle { return b.lifecycle }
func (b *Board) Mode() types.PowerMode      { return b.mode }
func (b *Board) StopCycles() uint32         { return b.stopCycles }
func (b *Board) Source() types.PowerSource  { return b.d.Source() }

// ---------------- Initialization ----------------

// Init brings the node to a known, fully-clocked, peripheral-ready state.
// The first call in a power cycle runs the cold sequence; every later call
// (each stop-mode wake) runs only the resume branch. The ADC and the
// radio bus/IO lose power in stop mode and are rebuilt unconditionally.
func (b *Board) Init() {
	if b.lifecycle == types.Uninitialized {
		b.d.Clocks.ConfigureCold()

		b.fatalIf("console", b.d.Console.Init())
		b.fatalIf("rtc", b.d.RTC.Init())

		b.ledsOff()
		b.unusedIoInit()

		if b.d.Source() == types.BatteryPower {
			// Never lose RAM on an autonomous unit: stop is the
			// deepest mode battery power may reach.
			b.lpm.SetOffMode(lpm.IDApp, false)
		}
	} else {
		b.d.Clocks.ConfigureResume()
	}

	b.fatalIf("adc", b.d.ADC.Init())
	b.fatalIf("radio bus", b.d.RadioBus.Init())
	b.fatalIf("radio io", b.d.Radio.IoInit())

	if b.lifecycle == types.Uninitialized {
		b.lifecycle = types.Initialized
		b.d.Radio.DbgInit()
		b.d.Radio.TcxoInit()
		if b.d.Source() == types.BatteryPower {
			b.CalibrateWakeup()
		}
	}

	b.fatalIf("watchdog", b.d.Watchdog.Start())
	b.mode = types.ModeRun
}

// Deinit tears down everything stop mode would otherwise leak through:
// the ADC, the radio bus and I/O, and the oscillator pins.
func (b *Board) Deinit() {
	_ = b.d.ADC.Deinit()
	_ = b.d.RadioBus.Deinit()
	_ = b.d.Radio.IoDeinit()

	b.parkPinAnalog(b.cfg.OscHSEIn)
	b.parkPinAnalog(b.cfg.OscHSEOut)
	b.parkPinPullDown(b.cfg.OscLSEIn)
	b.parkPinPullDown(b.cfg.OscLSEOut)
}

// Reset requests a system reset. Interrupts are masked so no handler can
// observe the teardown; the call does not return.
func (b *Board) Reset() {
	var tok critical.Token
	b.cs.Begin(&tok)
	b.d.Power.SystemReset()
}

// ---------------- Details ----------------

func (b *Board) fatalIf(what string, err error) {
	if err != nil {
		mcu.Fatal("board: " + what + ": " + err.Error())
	}
}

func (b *Board) ledsOff() {
	for _, n := range b.cfg.LEDs {
		if p, ok := b.d.Pins.ByNumber(n); ok {
			p.ConfigureOutput(false)
		}
	}
}

// unusedIoInit parks everything nothing drives. On battery power the USB
// data lines float otherwise; without a debugger the debug pins do too.
func (b *Board) unusedIoInit() {
	if b.d.Source() == types.BatteryPower {
		b.parkPinAnalog(b.cfg.USBDM)
		b.parkPinAnalog(b.cfg.USBDP)
	}
	if !b.d.Debugger {
		for _, n := range b.cfg.DebugPins {
			b.parkPinAnalog(n)
		}
	}
}

func (b *Board) parkPinAnalog(n int) {
	if p, ok := b.d.Pins.ByNumber(n); ok {
		p.ConfigureAnalog()
	}
}

func (b *Board) parkPinPullDown(n int) {
	if p, ok := b.d.Pins.ByNumber(n); ok {
		p.ConfigureInputPullDown()
	}
}
