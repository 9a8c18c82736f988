//go:build stm32l1

// rtc.go
package stm32l1

import (
	"runtime/volatile"
	"time"
	"unsafe"
)

type rtcRegs struct {
	TR       volatile.Register32
	DR       volatile.Register32
	CR       volatile.Register32
	ISR      volatile.Register32
	PRER     volatile.Register32
	WUTR     volatile.Register32
	CALIBR   volatile.Register32
	ALRMAR   volatile.Register32
	ALRMBR   volatile.Register32
	WPR      volatile.Register32
	SSR      volatile.Register32
	SHIFTR   volatile.Register32
	TSTR     volatile.Register32
	TSDR     volatile.Register32
	TSSSR    volatile.Register32
	CALR     volatile.Register32
	TAFCR    volatile.Register32
	ALRMASSR volatile.Register32
	ALRMBSSR volatile.Register32
}

var rtcHW = (*rtcRegs)(unsafe.Pointer(uintptr(0x40002800)))

const (
	rtcCR_WUTE        = 1 << 10
	rtcCR_WUCKSEL_D16 = 0x0 // RTCCLK/16: 2048Hz off the 32.768kHz LSE

	rtcISR_WUTWF = 1 << 2
	rtcISR_WUTF  = 1 << 10
)

const wakeupTickHz = 2048

// RTC wraps the calendar block's wakeup timer. It satisfies the board's
// RTC interface; the clock source must already be routed before Init.
type RTC struct {
	latency time.Duration
}

func (r *RTC) unlock() {
	rtcHW.WPR.Set(0xCA)
	rtcHW.WPR.Set(0x53)
}

func (r *RTC) Init() error {
	pwr.CR.SetBits(pwrCR_DBP)
	r.unlock()
	rtcHW.CR.ClearBits(rtcCR_WUTE)
	rtcHW.ISR.ClearBits(rtcISR_WUTF)
	return nil
}

// RecordWakeLatency stores the calibrated stop-exit overshoot so timer
// users can shorten their alarm spans by it.
func (r *RTC) RecordWakeLatency(d time.Duration) {
	r.latency = d
}

func (r *RTC) WakeLatency() time.Duration {
	return r.latency
}

// StartOneShot arms the wakeup timer for d and invokes cb once it fires.
// The flag is polled from a goroutine so the caller keeps running.
func (r *RTC) StartOneShot(d time.Duration, cb func()) {
	ticks := uint32(d.Milliseconds() * wakeupTickHz / 1000)
	if ticks == 0 {
		ticks = 1
	}
	r.unlock()
	rtcHW.CR.ClearBits(rtcCR_WUTE)
	for !rtcHW.ISR.HasBits(rtcISR_WUTWF) {
	}
	rtcHW.WUTR.Set(ticks - 1)
	rtcHW.ISR.ClearBits(rtcISR_WUTF)
	rtcHW.CR.Set(rtcHW.CR.Get()&^0x7 | rtcCR_WUCKSEL_D16 | rtcCR_WUTE)
	go func() {
		for !rtcHW.ISR.HasBits(rtcISR_WUTF) {
			time.Sleep(time.Millisecond)
		}
		rtcHW.ISR.ClearBits(rtcISR_WUTF)
		rtcHW.CR.ClearBits(rtcCR_WUTE)
		cb()
	}()
}
