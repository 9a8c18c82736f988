// mcu/mcu.go
//
// Package mcu defines the narrow hardware surface the power sequencer and
// clock controller drive. Real register access lives behind these interfaces
// (see mcu/stm32l1); host tests inject scripted fakes (see mcu/mcutest).
package mcu

// ---------------- Clock tree ----------------

// SysclkSource identifies the current system clock mux selection.
type SysclkSource uint8

const (
	SysclkMSI SysclkSource = iota // reset default, internal low-speed
	SysclkHSI
	SysclkHSE
	SysclkPLL
)

// VoltageScale selects the regulator performance range.
type VoltageScale uint8

const (
	Scale1 VoltageScale = iota + 1 // full performance
	Scale2
	Scale3 // lowest power
)

// PLLConfig is the fixed multiply/divide ratio applied to the HSE input.
type PLLConfig struct {
	Mul uint8
	Div uint8
}

// BusDividers fans the system clock out to the core and peripheral buses.
type BusDividers struct {
	AHB  uint16
	APB1 uint16
	APB2 uint16
}

// Clocks abstracts the reset/clock-control peripheral.
//
// The error-returning calls mirror the vendor library's status results and
// are only consulted on the cold path; the Ready/Locked predicates are the
// flags the resume path spins on. Neither path may select the PLL as system
// clock before PLLLocked reports true, and the PLL must not be enabled
// before HSEReady reports true.
type Clocks interface {
	SetVoltageScale(s VoltageScale) error
	VoltageScaleReady() bool

	EnableHSE() error
	HSEReady() bool
	EnableLSE() error
	LSEReady() bool

	EnablePLL(cfg PLLConfig) error
	PLLLocked() bool

	SelectSysclk(src SysclkSource, div BusDividers) error
	SysclkSource() SysclkSource

	// RouteRTCClock feeds the low-speed external oscillator to the RTC.
	RouteRTCClock() error

	// ConfigureSysTick programs the periodic tick off the core clock.
	ConfigureSysTick(hz uint32) error
}

// ---------------- Power control ----------------

// Power abstracts the power-control peripheral and the halt instructions.
// EnterStop and EnterSleep block until a hardware wake source fires; they
// have no timeout and no software-visible intermediate state.
type Power interface {
	DisablePVD()
	ClearWakeFlag()
	EnableUltraLowPower()
	EnableFastWakeUp()

	// EnterStop halts the core with most peripherals unpowered. With
	// lowPowerRegulator the main regulator is switched to its low-power
	// mode for the duration.
	EnterStop(lowPowerRegulator bool)

	// EnterSleep halts only the core; peripherals keep their clocks.
	EnterSleep()

	// EnterStandby powers down everything including RAM. Only reachable
	// through the lpm off-mode policy, which battery units disable.
	EnterStandby()

	// SystemReset requests a system-level reset and does not return.
	SystemReset()
}

// ---------------- Interrupt mask ----------------

// IRQ abstracts the global interrupt-enable state (PRIMASK on Cortex-M).
type IRQ interface {
	// Disable masks interrupts and returns the previous state for Restore.
	Disable() uintptr
	Restore(state uintptr)
}
