//go:build stm32l1

// adc.go
package stm32l1

import (
	"runtime/volatile"
	"unsafe"

	"nodeboard-go/errcode"
)

type adcRegs struct {
	SR    volatile.Register32
	CR1   volatile.Register32
	CR2   volatile.Register32
	SMPR1 volatile.Register32
	SMPR2 volatile.Register32
	SMPR3 volatile.Register32
	JOFR1 volatile.Register32
	JOFR2 volatile.Register32
	JOFR3 volatile.Register32
	JOFR4 volatile.Register32
	HTR   volatile.Register32
	LTR   volatile.Register32
	SQR1  volatile.Register32
	SQR2  volatile.Register32
	SQR3  volatile.Register32
	SQR4  volatile.Register32
	SQR5  volatile.Register32
	JSQR  volatile.Register32
	JDR1  volatile.Register32
	JDR2  volatile.Register32
	JDR3  volatile.Register32
	JDR4  volatile.Register32
	DR    volatile.Register32
}

var (
	adc1   = (*adcRegs)(unsafe.Pointer(uintptr(0x40012400)))
	adcCCR = (*volatile.Register32)(unsafe.Pointer(uintptr(0x40012708)))
)

const (
	adcSR_EOC      = 1 << 1
	adcSR_ADONS    = 1 << 6
	adcCR2_ADON    = 1 << 0
	adcCR2_SWSTART = 1 << 30
	adcCCR_TSVREFE = 1 << 23

	rccCR_HSION  = 1 << 0
	rccCR_HSIRDY = 1 << 1

	rccAPB2ENR_ADC1EN = 1 << 9
)

// ADC is the single successive-approximation converter. It satisfies the
// board's ADC interface: powered on only for the duration of Init..Deinit.
type ADC struct{}

// Init clocks the converter. The ADC on this family runs from HSI
// regardless of the system clock, so HSI is brought up alongside it.
func (a *ADC) Init() error {
	rcc.CR.SetBits(rccCR_HSION)
	for !rcc.CR.HasBits(rccCR_HSIRDY) {
	}
	rcc.APB2ENR.SetBits(rccAPB2ENR_ADC1EN)
	adc1.CR2.SetBits(adcCR2_ADON)
	for !adc1.SR.HasBits(adcSR_ADONS) {
	}
	return nil
}

func (a *ADC) Deinit() error {
	adcCCR.ClearBits(adcCCR_TSVREFE)
	adc1.CR2.ClearBits(adcCR2_ADON)
	rcc.APB2ENR.ClearBits(rccAPB2ENR_ADC1EN)
	return nil
}

// ReadChannel runs one regular conversion and returns the raw 12-bit
// sample. Channels 16 and 17 are the internal temperature sensor and
// bandgap reference; their buffer is switched in on demand.
func (a *ADC) ReadChannel(ch uint8) (uint16, error) {
	if ch > 26 {
		return 0, errcode.InvalidParams
	}
	if ch >= 16 {
		adcCCR.SetBits(adcCCR_TSVREFE)
	}
	adc1.SQR5.Set(uint32(ch)) // one conversion, SQ1 = ch
	adc1.CR2.SetBits(adcCR2_SWSTART)
	for !adc1.SR.HasBits(adcSR_EOC) {
	}
	return uint16(adc1.DR.Get() & 0xFFF), nil
}
