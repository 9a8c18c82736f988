//go:build stm32l1

// clocks.go
package stm32l1

import (
	"nodeboard-go/errcode"
	"nodeboard-go/mcu"
)

// pllMulEncoding maps the multiplier value to its CFGR PLLMUL field.
var pllMulEncoding = map[int]uint32{
	3: 0x0, 4: 0x1, 6: 0x2, 8: 0x3, 12: 0x4, 16: 0x5, 24: 0x6, 32: 0x7, 48: 0x8,
}

// ClockControl drives RCC and the core-voltage regulator. It satisfies
// mcu.Clocks; ready checks read the hardware flags directly so the
// sequencer's spin loops track the real oscillators.
type ClockControl struct{}

func NewClockControl() *ClockControl {
	enablePWRClock()
	return &ClockControl{}
}

func (c *ClockControl) SetVoltageScale(s mcu.VoltageScale) error {
	var bits uint32
	switch s {
	case mcu.Scale1:
		bits = 0x1
	case mcu.Scale2:
		bits = 0x2
	case mcu.Scale3:
		bits = 0x3
	default:
		return errcode.InvalidParams
	}
	pwr.CR.ReplaceBits(bits, 0x3, pwrCR_VOS_P)
	return nil
}

// VoltageScaleReady reports the regulator has settled on the programmed
// scale (VOSF clear).
func (c *ClockControl) VoltageScaleReady() bool {
	return !pwr.CSR.HasBits(pwrCSR_VOSF)
}

func (c *ClockControl) EnableHSE() error {
	rcc.CR.SetBits(rccCR_HSEON)
	return nil
}

func (c *ClockControl) HSEReady() bool {
	return rcc.CR.HasBits(rccCR_HSERDY)
}

func (c *ClockControl) EnableLSE() error {
	// LSE control lives in the backup domain; unlock it first.
	pwr.CR.SetBits(pwrCR_DBP)
	rcc.CSR.SetBits(rccCSR_LSEON)
	return nil
}

func (c *ClockControl) LSEReady() bool {
	return rcc.CSR.HasBits(rccCSR_LSERDY)
}

func (c *ClockControl) EnablePLL(cfg mcu.PLLConfig) error {
	mul, ok := pllMulEncoding[cfg.Mul]
	if !ok || cfg.Div < 2 || cfg.Div > 4 {
		return errcode.InvalidParams
	}
	rcc.CFGR.ReplaceBits(mul, 0xF, rccCFGR_PLLMUL_P)
	rcc.CFGR.ReplaceBits(uint32(cfg.Div-1), 0x3, rccCFGR_PLLDIV_P)
	rcc.CFGR.SetBits(rccCFGR_PLLSRC) // feed from HSE
	rcc.CR.SetBits(rccCR_PLLON)
	return nil
}

func (c *ClockControl) PLLLocked() bool {
	return rcc.CR.HasBits(rccCR_PLLRDY)
}

func (c *ClockControl) SelectSysclk(src mcu.SysclkSource, div mcu.BusDividers) error {
	if src != mcu.SysclkPLL || div.AHB != 1 || div.APB1 != 1 || div.APB2 != 1 {
		// The board runs everything at the PLL output undivided; other
		// trees are not wired up.
		return errcode.Unsupported
	}
	rcc.CFGR.ReplaceBits(rccCFGR_SW_PLL, 0x3, 0)
	return nil
}

func (c *ClockControl) SysclkSource() mcu.SysclkSource {
	switch (rcc.CFGR.Get() & rccCFGR_SWS_Msk) >> rccCFGR_SWS_Pos {
	case 0x0:
		return mcu.SysclkMSI
	case 0x1:
		return mcu.SysclkHSI
	case 0x2:
		return mcu.SysclkHSE
	default:
		return mcu.SysclkPLL
	}
}

func (c *ClockControl) RouteRTCClock() error {
	pwr.CR.SetBits(pwrCR_DBP)
	rcc.CSR.SetBits(rccCSR_RTCSEL_LSE | rccCSR_RTCEN)
	return nil
}

// ConfigureSysTick programs the core tick from the 32MHz system clock.
func (c *ClockControl) ConfigureSysTick(hz uint32) error {
	if hz == 0 {
		return errcode.InvalidParams
	}
	const sysclkHz = 32_000_000
	systick.RVR.Set(sysclkHz/hz - 1)
	systick.CVR.Set(0)
	systick.CSR.Set(0x7) // clksource=core, tickint, enable
	return nil
}
