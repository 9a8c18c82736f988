//go:build stm32l1

// uart.go
package stm32l1

import (
	"runtime/volatile"
	"unsafe"
)

type uartRegs struct {
	SR   volatile.Register32
	DR   volatile.Register32
	BRR  volatile.Register32
	CR1  volatile.Register32
	CR2  volatile.Register32
	CR3  volatile.Register32
	GTPR volatile.Register32
}

var usart1 = (*uartRegs)(unsafe.Pointer(uintptr(0x40013800)))

const (
	uartSR_RXNE = 1 << 5
	uartSR_TXE  = 1 << 7

	uartCR1_RE = 1 << 2
	uartCR1_TE = 1 << 3
	uartCR1_UE = 1 << 13

	rccAPB2ENR_USART1EN = 1 << 14
)

// UARTConfig names the console pads and line rate.
type UARTConfig struct {
	TX   Pin
	RX   Pin
	Baud uint32
}

// UART is a polled 8N1 port on USART1. It satisfies console.Port; the
// console layer supplies the software FIFOs on top.
type UART struct {
	cfg UARTConfig
}

func NewUART(cfg UARTConfig) *UART {
	return &UART{cfg: cfg}
}

func (u *UART) Init() error {
	rcc.APB2ENR.SetBits(rccAPB2ENR_USART1EN)
	u.cfg.TX.SetAltFunc(7)
	u.cfg.RX.SetAltFunc(7)
	const pclkHz = 32_000_000
	usart1.BRR.Set(pclkHz / u.cfg.Baud)
	usart1.CR1.Set(uartCR1_UE | uartCR1_TE | uartCR1_RE)
	return nil
}

func (u *UART) Deinit() error {
	for !usart1.SR.HasBits(uartSR_TXE) {
	}
	usart1.CR1.Set(0)
	rcc.APB2ENR.ClearBits(rccAPB2ENR_USART1EN)
	u.cfg.TX.SetAnalog()
	u.cfg.RX.SetAnalog()
	return nil
}

func (u *UART) WriteByte(b byte) error {
	for !usart1.SR.HasBits(uartSR_TXE) {
	}
	usart1.DR.Set(uint32(b))
	return nil
}

func (u *UART) Write(p []byte) (int, error) {
	for _, b := range p {
		if err := u.WriteByte(b); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

func (u *UART) Buffered() int {
	if usart1.SR.HasBits(uartSR_RXNE) {
		return 1
	}
	return 0
}

func (u *UART) ReadByte() (byte, error) {
	for !usart1.SR.HasBits(uartSR_RXNE) {
	}
	return byte(usart1.DR.Get()), nil
}
