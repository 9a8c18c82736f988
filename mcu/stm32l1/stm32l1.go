//go:build stm32l1

// Package stm32l1 is the register-level implementation of the mcu
// interfaces for the STM32L1 ultra-low-power parts. Only the blocks the
// sequencer drives are mapped; everything else stays behind the vendor
// reset defaults.
package stm32l1

import (
	"runtime/volatile"
	"unsafe"
)

// ---------------- Register blocks ----------------

type rccRegs struct {
	CR       volatile.Register32
	ICSCR    volatile.Register32
	CFGR     volatile.Register32
	CIR      volatile.Register32
	AHBRSTR  volatile.Register32
	APB2RSTR volatile.Register32
	APB1RSTR volatile.Register32
	AHBENR   volatile.Register32
	APB2ENR  volatile.Register32
	APB1ENR  volatile.Register32
	AHBLPENR volatile.Register32
	APB2LPEN volatile.Register32
	APB1LPEN volatile.Register32
	CSR      volatile.Register32
}

type pwrRegs struct {
	CR  volatile.Register32
	CSR volatile.Register32
}

type gpioRegs struct {
	MODER   volatile.Register32
	OTYPER  volatile.Register32
	OSPEEDR volatile.Register32
	PUPDR   volatile.Register32
	IDR     volatile.Register32
	ODR     volatile.Register32
	BSRR    volatile.Register32
	LCKR    volatile.Register32
	AFRL    volatile.Register32
	AFRH    volatile.Register32
}

type systickRegs struct {
	CSR   volatile.Register32
	RVR   volatile.Register32
	CVR   volatile.Register32
	CALIB volatile.Register32
}

var (
	rcc     = (*rccRegs)(unsafe.Pointer(uintptr(0x40023800)))
	pwr     = (*pwrRegs)(unsafe.Pointer(uintptr(0x40007000)))
	systick = (*systickRegs)(unsafe.Pointer(uintptr(0xE000E010)))

	scbSCR   = (*volatile.Register32)(unsafe.Pointer(uintptr(0xE000ED10)))
	scbAIRCR = (*volatile.Register32)(unsafe.Pointer(uintptr(0xE000ED0C)))
)

// ---------------- RCC bits ----------------

const (
	rccCR_HSEON  = 1 << 16
	rccCR_HSERDY = 1 << 17
	rccCR_PLLON  = 1 << 24
	rccCR_PLLRDY = 1 << 25

	rccCFGR_SW_PLL   = 0x3
	rccCFGR_SWS_Msk  = 0x3 << 2
	rccCFGR_SWS_Pos  = 2
	rccCFGR_PLLSRC   = 1 << 16
	rccCFGR_PLLMUL_P = 18
	rccCFGR_PLLDIV_P = 22

	rccCSR_LSEON      = 1 << 8
	rccCSR_LSERDY     = 1 << 9
	rccCSR_RTCSEL_LSE = 1 << 16
	rccCSR_RTCEN      = 1 << 22

	rccAPB1ENR_PWREN = 1 << 28
)

// ---------------- PWR bits ----------------

const (
	pwrCR_LPSDSR = 1 << 0
	pwrCR_PDDS   = 1 << 1
	pwrCR_CWUF   = 1 << 2
	pwrCR_PVDE   = 1 << 4
	pwrCR_DBP    = 1 << 8
	pwrCR_ULP    = 1 << 9
	pwrCR_FWU    = 1 << 10
	pwrCR_VOS_P  = 11

	pwrCSR_VOSF = 1 << 4
)

const (
	scbSCR_SLEEPDEEP = 1 << 2

	scbAIRCR_VECTKEY     = 0x05FA << 16
	scbAIRCR_SYSRESETREQ = 1 << 2
)

// enablePWRClock gates the power controller's APB clock on; every CR/CSR
// access needs it.
func enablePWRClock() {
	rcc.APB1ENR.SetBits(rccAPB1ENR_PWREN)
}
