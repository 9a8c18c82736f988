// platform/factories_rp2xxx.go
//go:build rp2040 || rp2350

package platform

import (
	"context"
	"machine"
	"time"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"

	"nodeboard-go/board"
	"nodeboard-go/clocks"
	"nodeboard-go/console"
	"nodeboard-go/drivers/sx1272"
	"nodeboard-go/errcode"
	"nodeboard-go/mcu"
	"nodeboard-go/types"
	"nodeboard-go/x/fifo"
)

// Bench-mule wiring: the sequencer and radio run on a Pico carrier while
// the L1 target board is unavailable. Clocks and stop mode are stand-ins;
// everything from the pin surface up is the real code path.

const (
	muleUartTX = 0
	muleUartRX = 1

	muleSpiSCK  = 18
	muleSpiMISO = 16
	muleSpiMOSI = 19

	muleRadioNSS   = 17
	muleRadioReset = 20
	muleRadioDIO0  = 21
	muleRadioDIO1  = 22
	muleRadioDIO2  = 26
	muleRadioDIO3  = 27
	muleRadioAntSw = 28
)

// ---------------- Clocks / power (bench) ----------------

// muleClocks reports ready immediately; the RP2 bootrom already brought
// its own tree up and the sequencer only needs its spins to terminate.
type muleClocks struct{ src mcu.SysclkSource }

func (m *muleClocks) SetVoltageScale(mcu.VoltageScale) error { return nil }
func (m *muleClocks) VoltageScaleReady() bool                { return true }
func (m *muleClocks) EnableHSE() error                       { return nil }
func (m *muleClocks) HSEReady() bool                         { return true }
func (m *muleClocks) EnableLSE() error                       { return nil }
func (m *muleClocks) LSEReady() bool                         { return true }
func (m *muleClocks) EnablePLL(mcu.PLLConfig) error          { return nil }
func (m *muleClocks) PLLLocked() bool                        { return true }
func (m *muleClocks) RouteRTCClock() error                   { return nil }
func (m *muleClocks) ConfigureSysTick(uint32) error          { return nil }

func (m *muleClocks) SelectSysclk(src mcu.SysclkSource, _ mcu.BusDividers) error {
	m.src = src
	return nil
}
func (m *muleClocks) SysclkSource() mcu.SysclkSource { return m.src }

// mulePower approximates stop mode with a fixed nap so wake cycling can
// be exercised on the bench.
type mulePower struct{}

func (mulePower) DisablePVD()          {}
func (mulePower) ClearWakeFlag()       {}
func (mulePower) EnableUltraLowPower() {}
func (mulePower) EnableFastWakeUp()    {}
func (mulePower) EnterStop(bool)       { time.Sleep(100 * time.Millisecond) }
func (mulePower) EnterSleep()          { time.Sleep(time.Millisecond) }
func (mulePower) EnterStandby()        { select {} }

func (mulePower) SystemReset() {
	machine.CPUReset()
}

type muleIRQ struct{ masked bool }

func (m *muleIRQ) Disable() uintptr {
	was := m.masked
	m.masked = true
	if was {
		return 1
	}
	return 0
}

func (m *muleIRQ) Restore(state uintptr) { m.masked = state != 0 }

// ---------------- Pins ----------------

type mulePin struct{ p machine.Pin }

func (m mulePin) ConfigureOutput(initial bool) {
	m.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	m.p.Set(initial)
}

func (m mulePin) ConfigureInputPullDown() {
	m.p.Configure(machine.PinConfig{Mode: machine.PinInputPulldown})
}

// ConfigureAnalog approximates analog parking; RP2 pads float as plain
// inputs.
func (m mulePin) ConfigureAnalog() {
	m.p.Configure(machine.PinConfig{Mode: machine.PinInput})
}

func (m mulePin) Set(level bool) { m.p.Set(level) }
func (m mulePin) Get() bool      { return m.p.Get() }

func (m mulePin) ConfigureInput(pull sx1272.Pull) {
	var mode machine.PinMode
	switch pull {
	case sx1272.PullUp:
		mode = machine.PinInputPullup
	case sx1272.PullDown:
		mode = machine.PinInputPulldown
	default:
		mode = machine.PinInput
	}
	m.p.Configure(machine.PinConfig{Mode: mode})
}

type mulePinFactory struct{}

func (mulePinFactory) ByNumber(n int) (board.Pin, bool) {
	if n < 0 || n > 28 {
		return nil, false
	}
	return mulePin{p: machine.Pin(n)}, true
}

// ---------------- ADC ----------------

// muleADC serves channels 0..3 from the RP2 converter on GPIO26+ch. The
// bandgap channel has no counterpart here, so it reads as a healthy pack.
type muleADC struct{}

func (muleADC) Init() error   { machine.InitADC(); return nil }
func (muleADC) Deinit() error { return nil }

func (muleADC) ReadChannel(ch uint8) (uint16, error) {
	if ch > 3 {
		return 1519, nil
	}
	a := machine.ADC{Pin: machine.Pin(26 + ch)}
	a.Configure(machine.ADCConfig{})
	return a.Get() >> 4, nil // 16-bit left-aligned to 12-bit
}

// ---------------- SPI ----------------

// muleSPI wraps the machine SPI with the board's Peripheral lifecycle.
type muleSPI struct{ hw *machine.SPI }

func (s *muleSPI) Init() error {
	return s.hw.Configure(machine.SPIConfig{
		Frequency: 8_000_000,
		SCK:       machine.Pin(muleSpiSCK),
		SDI:       machine.Pin(muleSpiMISO),
		SDO:       machine.Pin(muleSpiMOSI),
		Mode:      0,
	})
}

func (s *muleSPI) Deinit() error { return nil }

func (s *muleSPI) Tx(w, r []byte) error          { return s.hw.Tx(w, r) }
func (s *muleSPI) Transfer(b byte) (byte, error) { return s.hw.Transfer(b) }

// ---------------- RTC / watchdog ----------------

type muleRTC struct{ latency time.Duration }

func (r *muleRTC) Init() error                       { return nil }
func (r *muleRTC) RecordWakeLatency(d time.Duration) { r.latency = d }

func (r *muleRTC) StartOneShot(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}

type muleWatchdog struct{}

func (muleWatchdog) Start() error { return nil }

// ---------------- Console port ----------------

// mulePort adapts uartx to the console port. Receive is pumped from a
// goroutine into a ring so Buffered never blocks.
type mulePort struct {
	u  *uartx.UART
	rx *fifo.Ring
}

func newMulePort(baud uint32) *mulePort {
	hw := uartx.UART0
	_ = hw.Configure(uartx.UARTConfig{
		BaudRate: baud,
		TX:       machine.Pin(muleUartTX),
		RX:       machine.Pin(muleUartRX),
	})
	p := &mulePort{u: hw, rx: fifo.New(1024)}
	go p.pump()
	return p
}

func (p *mulePort) pump() {
	buf := make([]byte, 64)
	for {
		n, err := p.u.RecvSomeContext(context.Background(), buf)
		if err != nil {
			return
		}
		p.rx.Write(buf[:n])
	}
}

func (p *mulePort) WriteByte(b byte) error {
	_, err := p.u.Write([]byte{b})
	return err
}

func (p *mulePort) Write(b []byte) (int, error) { return p.u.Write(b) }
func (p *mulePort) Buffered() int               { return p.rx.Available() }

func (p *mulePort) ReadByte() (byte, error) {
	b, ok := p.rx.Pop()
	if !ok {
		return 0, errcode.NoData
	}
	return b, nil
}

// ---------------- Assembly ----------------

func Setup(cfg types.BoardConfig) (*System, error) {
	con := console.New(newMulePort(cfg.UARTBaud), console.Config{
		FIFOSize: cfg.ConsoleFIFO,
		Echo:     cfg.ConsoleEcho,
	})

	bus := &muleSPI{hw: machine.SPI0}
	radio := sx1272.New(bus, sx1272.Pins{
		NSS:   mulePin{p: machine.Pin(muleRadioNSS)},
		Reset: mulePin{p: machine.Pin(muleRadioReset)},
		DIO0:  mulePin{p: machine.Pin(muleRadioDIO0)},
		DIO1:  mulePin{p: machine.Pin(muleRadioDIO1)},
		DIO2:  mulePin{p: machine.Pin(muleRadioDIO2)},
		DIO3:  mulePin{p: machine.Pin(muleRadioDIO3)},
		AntSw: mulePin{p: machine.Pin(muleRadioAntSw)},
	})

	b := board.New(board.Deps{
		Clocks: clocks.New(&muleClocks{}, clocks.Config{
			PLL:       mcu.PLLConfig{Mul: cfg.PLLMul, Div: cfg.PLLDiv},
			SysTickHz: cfg.SysTickHz,
		}),
		Power:    mulePower{},
		IRQ:      &muleIRQ{},
		Pins:     mulePinFactory{},
		ADC:      muleADC{},
		RadioBus: bus,
		Radio:    radio,
		RTC:      &muleRTC{},
		Watchdog: muleWatchdog{},
		Console:  con,
		Source:   func() types.PowerSource { return types.ExternalPower },
		ID: func() [3]uint32 {
			// RP2 exposes a 64-bit flash UID through machine.DeviceID.
			id := machine.DeviceID()
			var w [3]uint32
			for i, b := range id {
				w[i%3] ^= uint32(b) << (8 * (i % 4))
			}
			return w
		},
		Debugger: cfg.DebuggerKept,
	}, cfg)

	return &System{Board: b, Console: con}, nil
}
