//go:build stm32l1

// wdg.go
package stm32l1

import (
	"runtime/volatile"
	"unsafe"
)

type iwdgRegs struct {
	KR  volatile.Register32
	PR  volatile.Register32
	RLR volatile.Register32
	SR  volatile.Register32
}

var iwdg = (*iwdgRegs)(unsafe.Pointer(uintptr(0x40003000)))

// Watchdog is the independent watchdog, clocked from LSI so it keeps
// counting through stop mode. Roughly 28s at /256 with a full reload.
type Watchdog struct{}

func (w *Watchdog) Start() error {
	iwdg.KR.Set(0x5555) // unlock PR/RLR
	iwdg.PR.Set(0x6)    // prescaler /256
	iwdg.RLR.Set(0xFFF)
	iwdg.KR.Set(0xCCCC) // start
	return nil
}

func (w *Watchdog) Feed() {
	iwdg.KR.Set(0xAAAA)
}
