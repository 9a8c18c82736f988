//go:build stm32l1

// spi.go
package stm32l1

import (
	"runtime/volatile"
	"unsafe"
)

type spiRegs struct {
	CR1     volatile.Register32
	CR2     volatile.Register32
	SR      volatile.Register32
	DR      volatile.Register32
	CRCPR   volatile.Register32
	RXCRCR  volatile.Register32
	TXCRCR  volatile.Register32
	I2SCFGR volatile.Register32
	I2SPR   volatile.Register32
}

var spi1 = (*spiRegs)(unsafe.Pointer(uintptr(0x40013000)))

const (
	spiCR1_MSTR = 1 << 2
	spiCR1_SPE  = 1 << 6
	spiCR1_SSI  = 1 << 8
	spiCR1_SSM  = 1 << 9
	spiCR1_BR_P = 3

	spiSR_RXNE = 1 << 0
	spiSR_TXE  = 1 << 1
	spiSR_BSY  = 1 << 7

	rccAPB2ENR_SPI1EN = 1 << 12
)

// SPIConfig names the pads the master drives. NSS stays under software
// control; callers toggle their own chip select.
type SPIConfig struct {
	SCK  Pin
	MISO Pin
	MOSI Pin
}

// SPI is a polled mode-0 master on SPI1. It satisfies drivers.SPI and
// the board's Peripheral interface.
type SPI struct {
	cfg SPIConfig
}

func NewSPI(cfg SPIConfig) *SPI {
	return &SPI{cfg: cfg}
}

func (s *SPI) Init() error {
	rcc.APB2ENR.SetBits(rccAPB2ENR_SPI1EN)
	s.cfg.SCK.SetAltFunc(5)
	s.cfg.MISO.SetAltFunc(5)
	s.cfg.MOSI.SetAltFunc(5)
	// fPCLK/4 gives 8MHz at the 32MHz bus clock, inside the radio's
	// 10MHz limit.
	spi1.CR1.Set(spiCR1_MSTR | spiCR1_SSM | spiCR1_SSI | 0x1<<spiCR1_BR_P)
	spi1.CR1.SetBits(spiCR1_SPE)
	return nil
}

func (s *SPI) Deinit() error {
	for spi1.SR.HasBits(spiSR_BSY) {
	}
	spi1.CR1.ClearBits(spiCR1_SPE)
	rcc.APB2ENR.ClearBits(rccAPB2ENR_SPI1EN)
	s.cfg.SCK.SetAnalog()
	s.cfg.MISO.SetAnalog()
	s.cfg.MOSI.SetAnalog()
	return nil
}

func (s *SPI) Transfer(b byte) (byte, error) {
	for !spi1.SR.HasBits(spiSR_TXE) {
	}
	spi1.DR.Set(uint32(b))
	for !spi1.SR.HasBits(spiSR_RXNE) {
	}
	return byte(spi1.DR.Get()), nil
}

func (s *SPI) Tx(w, r []byte) error {
	switch {
	case len(w) == len(r):
		for i, b := range w {
			out, err := s.Transfer(b)
			if err != nil {
				return err
			}
			r[i] = out
		}
	case r == nil:
		for _, b := range w {
			if _, err := s.Transfer(b); err != nil {
				return err
			}
		}
	default:
		for i := range r {
			out, err := s.Transfer(0)
			if err != nil {
				return err
			}
			r[i] = out
		}
	}
	return nil
}
