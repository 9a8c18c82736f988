// mcu/mcutest/mcutest.go
//
// Scripted fakes for the mcu interfaces. Host-side tests drive the clock
// controller and power sequencer against these instead of real registers.
package mcutest

import (
	"sync"

	"nodeboard-go/mcu"
)

// ---------------- Clocks ----------------

// Clocks implements mcu.Clocks and records every call in order.
//
// Ready predicates report false for the scripted number of polls before
// going true, so spin-wait ordering is observable in the log. A zero value
// is "always ready".
type Clocks struct {
	mu  sync.Mutex
	log []string

	// Polls to report not-ready before each flag reads true.
	VOSPolls, HSEPolls, LSEPolls, PLLPolls, SWSPolls int

	// Step errors for the cold path.
	ErrScale, ErrHSE, ErrLSE, ErrPLL, ErrSysclk, ErrRTC, ErrTick error

	hseOn, lseOn, pllOn bool
	pllCfg              mcu.PLLConfig
	sysclk              mcu.SysclkSource
	scale               mcu.VoltageScale
	tickHz              uint32
}

func (c *Clocks) record(ev string) {
	c.mu.Lock()
	c.log = append(c.log, ev)
	c.mu.Unlock()
}

// Log returns a copy of the ordered call/flag trace.
func (c *Clocks) Log() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.log...)
}

func (c *Clocks) SetVoltageScale(s mcu.VoltageScale) error {
	c.scale = s
	c.record("scale_set")
	return c.ErrScale
}

func (c *Clocks) VoltageScaleReady() bool {
	if c.VOSPolls > 0 {
		c.VOSPolls--
		return false
	}
	c.record("scale_ready")
	return true
}

func (c *Clocks) EnableHSE() error {
	c.hseOn = true
	c.record("hse_on")
	return c.ErrHSE
}

func (c *Clocks) HSEReady() bool {
	if c.HSEPolls > 0 {
		c.HSEPolls--
		return false
	}
	c.record("hse_ready")
	return c.hseOn
}

func (c *Clocks) EnableLSE() error {
	c.lseOn = true
	c.record("lse_on")
	return c.ErrLSE
}

func (c *Clocks) LSEReady() bool {
	if c.LSEPolls > 0 {
		c.LSEPolls--
		return false
	}
	c.record("lse_ready")
	return c.lseOn
}

func (c *Clocks) EnablePLL(cfg mcu.PLLConfig) error {
	c.pllOn = true
	c.pllCfg = cfg
	c.record("pll_on")
	return c.ErrPLL
}

func (c *Clocks) PLLLocked() bool {
	if c.PLLPolls > 0 {
		c.PLLPolls--
		return false
	}
	c.record("pll_locked")
	return c.pllOn
}

func (c *Clocks) SelectSysclk(src mcu.SysclkSource, _ mcu.BusDividers) error {
	c.sysclk = src
	c.record("sysclk_select")
	return c.ErrSysclk
}

func (c *Clocks) SysclkSource() mcu.SysclkSource {
	if c.SWSPolls > 0 {
		c.SWSPolls--
		return mcu.SysclkMSI
	}
	c.record("sysclk_read")
	return c.sysclk
}

func (c *Clocks) RouteRTCClock() error {
	c.record("rtc_clock")
	return c.ErrRTC
}

func (c *Clocks) ConfigureSysTick(hz uint32) error {
	c.tickHz = hz
	c.record("systick")
	return c.ErrTick
}

// PLLRatio reports the last ratio handed to EnablePLL.
func (c *Clocks) PLLRatio() mcu.PLLConfig { return c.pllCfg }

// DropToReset simulates stop mode clearing the oscillator enables and
// switching the system clock back to its reset default.
func (c *Clocks) DropToReset() {
	c.hseOn = false
	c.pllOn = false
	c.sysclk = mcu.SysclkMSI
}

// ---------------- Power ----------------

// Power implements mcu.Power. EnterStop returns immediately, standing in
// for the hardware wake event; OnStop runs while "halted" when set.
type Power struct {
	PVDOff, WakeCleared   bool
	ULPOn, FastWakeOn     bool
	StopCount, SleepCount int
	LowPowerReg           bool
	StandbyCount          int
	ResetCount            int

	OnStop func()
}

func (p *Power) DisablePVD()          { p.PVDOff = true }
func (p *Power) ClearWakeFlag()       { p.WakeCleared = true }
func (p *Power) EnableUltraLowPower() { p.ULPOn = true }
func (p *Power) EnableFastWakeUp()    { p.FastWakeOn = true }

func (p *Power) EnterStop(lowPowerRegulator bool) {
	p.StopCount++
	p.LowPowerReg = lowPowerRegulator
	if p.OnStop != nil {
		p.OnStop()
	}
}

func (p *Power) EnterSleep()   { p.SleepCount++ }
func (p *Power) EnterStandby() { p.StandbyCount++ }
func (p *Power) SystemReset()  { p.ResetCount++ }

// ---------------- IRQ ----------------

// IRQ implements mcu.IRQ over a plain bool. State 1 means masked, matching
// the PRIMASK convention.
type IRQ struct {
	Masked bool
}

func (i *IRQ) Disable() uintptr {
	prev := uintptr(0)
	if i.Masked {
		prev = 1
	}
	i.Masked = true
	return prev
}

func (i *IRQ) Restore(state uintptr) {
	i.Masked = state != 0
}
