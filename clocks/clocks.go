// clocks/clocks.go
//
// Package clocks owns the oscillator/PLL/bus-divider tree. Two sequences
// exist: ConfigureCold brings the tree up from reset defaults, and
// ConfigureResume re-arms the same PLL after stop mode dropped the
// oscillator enables. On return from either, callers may assume the PLL is
// the system clock at full speed.
package clocks

import "nodeboard-go/mcu"

// Config fixes the ratios for one board. The PLL ratio is identical on the
// cold and resume paths; resume never renegotiates it.
type Config struct {
	PLL       mcu.PLLConfig
	Dividers  mcu.BusDividers
	SysTickHz uint32
}

type Controller struct {
	hw  mcu.Clocks
	cfg Config
}

func New(hw mcu.Clocks, cfg Config) *Controller {
	if cfg.Dividers == (mcu.BusDividers{}) {
		cfg.Dividers = mcu.BusDividers{AHB: 1, APB1: 1, APB2: 1}
	}
	if cfg.SysTickHz == 0 {
		cfg.SysTickHz = 1000
	}
	return &Controller{hw: hw, cfg: cfg}
}

// ConfigureCold runs the full bring-up from reset defaults. Every step is
// checked against the hardware layer's status result; any failure traps.
// There is no partial rollback: a half-configured clock tree is not a state
// the rest of the system is allowed to observe.
func (c *Controller) ConfigureCold() {
	if err := c.hw.SetVoltageScale(mcu.Scale1); err != nil {
		mcu.Fatal("clocks: voltage scale: " + err.Error())
		return
	}
	if err := c.hw.EnableHSE(); err != nil {
		mcu.Fatal("clocks: hse enable: " + err.Error())
		return
	}
	if err := c.hw.EnableLSE(); err != nil {
		mcu.Fatal("clocks: lse enable: " + err.Error())
		return
	}

	// PLL source must be stable before the PLL is switched on.
	for !c.hw.HSEReady() {
	}
	if err := c.hw.EnablePLL(c.cfg.PLL); err != nil {
		mcu.Fatal("clocks: pll enable: " + err.Error())
		return
	}

	// Lock strictly precedes selection as system clock.
	for !c.hw.PLLLocked() {
	}
	if err := c.hw.SelectSysclk(mcu.SysclkPLL, c.cfg.Dividers); err != nil {
		mcu.Fatal("clocks: sysclk select: " + err.Error())
		return
	}

	// The RTC runs off the LSE; it must be stable before it is routed.
	for !c.hw.LSEReady() {
	}
	if err := c.hw.RouteRTCClock(); err != nil {
		mcu.Fatal("clocks: rtc clock route: " + err.Error())
		return
	}
	if err := c.hw.ConfigureSysTick(c.cfg.SysTickHz); err != nil {
		mcu.Fatal("clocks: systick: " + err.Error())
		return
	}
}

// ConfigureResume re-arms the clock tree after stop mode. Each wait is an
// unbounded spin on the hardware flag: a stalled oscillator here is an
// unrecoverable fault and the independent watchdog is the recovery path.
// Status results are not consulted on this path; the flags are the truth.
func (c *Controller) ConfigureResume() {
	_ = c.hw.SetVoltageScale(mcu.Scale1)
	for !c.hw.VoltageScaleReady() {
	}

	_ = c.hw.EnableHSE()
	for !c.hw.HSEReady() {
	}

	_ = c.hw.EnablePLL(c.cfg.PLL)
	for !c.hw.PLLLocked() {
	}

	_ = c.hw.SelectSysclk(mcu.SysclkPLL, c.cfg.Dividers)
	for c.hw.SysclkSource() != mcu.SysclkPLL {
	}
}

// Running reports whether the PLL is the active system clock source.
func (c *Controller) Running() bool {
	return c.hw.SysclkSource() == mcu.SysclkPLL
}
