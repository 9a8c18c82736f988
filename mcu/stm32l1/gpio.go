//go:build stm32l1

// gpio.go
package stm32l1

import "unsafe"

// Pull selects the pad resistor for input pins.
type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

const (
	modeInput  = 0x0
	modeOutput = 0x1
	modeAltFn  = 0x2
	modeAnalog = 0x3
)

// Pin is one GPIO pad, numbered port-major: pin 0 is PA0, pin 16 is PB0
// and so on. The zero value is not usable; get pins from PinByNumber.
type Pin struct {
	port *gpioRegs
	bit  uint32
}

// PinByNumber resolves a flat pin number to its port register block and
// gates the port clock on. ok is false for numbers past port E.
func PinByNumber(n int) (Pin, bool) {
	if n < 0 || n >= 5*16 {
		return Pin{}, false
	}
	portIdx := uint32(n / 16)
	rcc.AHBENR.SetBits(1 << portIdx) // GPIOxEN
	base := uintptr(0x40020000) + uintptr(portIdx)*0x400
	return Pin{
		port: (*gpioRegs)(unsafe.Pointer(base)),
		bit:  uint32(n % 16),
	}, true
}

func (p Pin) setMode(mode uint32) {
	p.port.MODER.ReplaceBits(mode, 0x3, uint8(p.bit*2))
}

func (p Pin) setPull(pull Pull) {
	p.port.PUPDR.ReplaceBits(uint32(pull), 0x3, uint8(p.bit*2))
}

func (p Pin) SetOutput(level bool) {
	p.Set(level)
	p.setPull(PullNone)
	p.setMode(modeOutput)
}

func (p Pin) SetInput(pull Pull) {
	p.setPull(pull)
	p.setMode(modeInput)
}

// SetAnalog parks the pad: no digital input buffer, no pull, lowest
// leakage.
func (p Pin) SetAnalog() {
	p.setPull(PullNone)
	p.setMode(modeAnalog)
}

// SetAltFunc routes the pad to a peripheral alternate function.
func (p Pin) SetAltFunc(af uint8) {
	if p.bit < 8 {
		p.port.AFRL.ReplaceBits(uint32(af), 0xF, uint8(p.bit*4))
	} else {
		p.port.AFRH.ReplaceBits(uint32(af), 0xF, uint8((p.bit-8)*4))
	}
	p.setPull(PullNone)
	p.setMode(modeAltFn)
}

func (p Pin) Set(level bool) {
	if level {
		p.port.BSRR.Set(1 << p.bit)
	} else {
		p.port.BSRR.Set(1 << (p.bit + 16))
	}
}

func (p Pin) Get() bool {
	return p.port.IDR.HasBits(1 << p.bit)
}
