// platform/factories_host.go
//go:build !rp2040 && !rp2350 && !stm32l1

package platform

import (
	"os"
	"sync"
	"time"

	"nodeboard-go/board"
	"nodeboard-go/clocks"
	"nodeboard-go/console"
	"nodeboard-go/drivers/sx1272"
	"nodeboard-go/errcode"
	"nodeboard-go/mcu"
	"nodeboard-go/types"
	"nodeboard-go/x/fifo"
)

// ---------------- Clocks / power (host) ----------------

// hostClocks is an always-ready clock tree so the sequencer's spin loops
// terminate instantly off-target.
type hostClocks struct {
	src mcu.SysclkSource
}

func (h *hostClocks) SetVoltageScale(mcu.VoltageScale) error { return nil }
func (h *hostClocks) VoltageScaleReady() bool                { return true }
func (h *hostClocks) EnableHSE() error                       { return nil }
func (h *hostClocks) HSEReady() bool                         { return true }
func (h *hostClocks) EnableLSE() error                       { return nil }
func (h *hostClocks) LSEReady() bool                         { return true }
func (h *hostClocks) EnablePLL(mcu.PLLConfig) error          { return nil }
func (h *hostClocks) PLLLocked() bool                        { return true }
func (h *hostClocks) RouteRTCClock() error                   { return nil }
func (h *hostClocks) ConfigureSysTick(uint32) error          { return nil }

func (h *hostClocks) SelectSysclk(src mcu.SysclkSource, _ mcu.BusDividers) error {
	h.src = src
	return nil
}
func (h *hostClocks) SysclkSource() mcu.SysclkSource { return h.src }

// hostPower halts nothing; stop mode returns immediately as if an
// interrupt fired at once.
type hostPower struct{}

func (hostPower) DisablePVD()          {}
func (hostPower) ClearWakeFlag()       {}
func (hostPower) EnableUltraLowPower() {}
func (hostPower) EnableFastWakeUp()    {}
func (hostPower) EnterStop(bool)       {}
func (hostPower) EnterSleep()          {}
func (hostPower) EnterStandby()        { os.Exit(0) }
func (hostPower) SystemReset()         { os.Exit(0) }

type hostIRQ struct{ masked bool }

func (h *hostIRQ) Disable() uintptr {
	was := h.masked
	h.masked = true
	if was {
		return 1
	}
	return 0
}

func (h *hostIRQ) Restore(state uintptr) { h.masked = state != 0 }

// ---------------- GPIO (host) ----------------

// HostPin implements both the board and radio pin surfaces for host runs.
type HostPin struct {
	mu     sync.Mutex
	number int
	level  bool
}

func (p *HostPin) ConfigureOutput(initial bool) { p.Set(initial) }
func (p *HostPin) ConfigureInput(sx1272.Pull)   {}
func (p *HostPin) ConfigureInputPullDown()      {}
func (p *HostPin) ConfigureAnalog()             {}

func (p *HostPin) Set(level bool) {
	p.mu.Lock()
	p.level = level
	p.mu.Unlock()
}

func (p *HostPin) Get() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

type hostPinFactory struct {
	mu   sync.Mutex
	pins map[int]*HostPin
}

func (f *hostPinFactory) ByNumber(n int) (board.Pin, bool) {
	if n < 0 {
		return nil, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pins[n]
	if !ok {
		p = &HostPin{number: n}
		f.pins[n] = p
	}
	return p, true
}

// ---------------- ADC / SPI (host) ----------------

// hostADC returns a fixed bandgap sample equivalent to a healthy pack.
type hostADC struct{ inited bool }

func (a *hostADC) Init() error   { a.inited = true; return nil }
func (a *hostADC) Deinit() error { a.inited = false; return nil }

func (a *hostADC) ReadChannel(ch uint8) (uint16, error) {
	// 1224mV bandgap read against a 3.3V rail.
	return 1519, nil
}

// HostSPI implements tinygo drivers.SPI; writes are recorded, reads
// return zero.
type HostSPI struct {
	mu     sync.Mutex
	Frames [][]byte
}

func (s *HostSPI) Tx(w, r []byte) error {
	s.mu.Lock()
	s.Frames = append(s.Frames, append([]byte(nil), w...))
	s.mu.Unlock()
	for i := range r {
		r[i] = 0
	}
	return nil
}

func (s *HostSPI) Transfer(b byte) (byte, error) {
	return 0, s.Tx([]byte{b}, nil)
}

func (s *HostSPI) Init() error   { return nil }
func (s *HostSPI) Deinit() error { return nil }

// ---------------- RTC / watchdog (host) ----------------

type hostRTC struct{ latency time.Duration }

func (r *hostRTC) Init() error                       { return nil }
func (r *hostRTC) RecordWakeLatency(d time.Duration) { r.latency = d }
func (r *hostRTC) StartOneShot(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}

type hostWatchdog struct{}

func (hostWatchdog) Start() error { return nil }

// ---------------- Console (host) ----------------

// hostPort bridges the console to the process's stdio. Stdin is pumped
// from a goroutine so Buffered stays non-blocking.
type hostPort struct {
	rx   *fifo.Ring
	once sync.Once
}

func newHostPort() *hostPort {
	return &hostPort{rx: fifo.New(1024)}
}

func (p *hostPort) pump() {
	buf := make([]byte, 64)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			return
		}
		p.rx.Write(buf[:n])
	}
}

func (p *hostPort) WriteByte(b byte) error {
	_, err := os.Stdout.Write([]byte{b})
	return err
}

func (p *hostPort) Write(b []byte) (int, error) { return os.Stdout.Write(b) }

func (p *hostPort) Buffered() int {
	p.once.Do(func() { go p.pump() })
	return p.rx.Available()
}

func (p *hostPort) ReadByte() (byte, error) {
	b, ok := p.rx.Pop()
	if !ok {
		return 0, errcode.NoData
	}
	return b, nil
}

// ---------------- Assembly ----------------

// Setup builds a fully simulated board: external power, stdio console,
// inert radio. Used by host binaries and bench tools.
func Setup(cfg types.BoardConfig) (*System, error) {
	pins := &hostPinFactory{pins: make(map[int]*HostPin)}
	con := console.New(newHostPort(), console.Config{
		FIFOSize: cfg.ConsoleFIFO,
		Echo:     cfg.ConsoleEcho,
	})
	bus := &HostSPI{}
	radio := sx1272.New(bus, sx1272.Pins{
		NSS:   &HostPin{},
		Reset: &HostPin{},
		DIO0:  &HostPin{},
		DIO1:  &HostPin{},
		DIO2:  &HostPin{},
		DIO3:  &HostPin{},
		AntSw: &HostPin{},
	})

	b := board.New(board.Deps{
		Clocks:   clocks.New(&hostClocks{}, clocks.Config{PLL: mcu.PLLConfig{Mul: cfg.PLLMul, Div: cfg.PLLDiv}, SysTickHz: cfg.SysTickHz}),
		Power:    hostPower{},
		IRQ:      &hostIRQ{},
		Pins:     pins,
		ADC:      &hostADC{},
		RadioBus: bus,
		Radio:    radio,
		RTC:      &hostRTC{},
		Watchdog: hostWatchdog{},
		Console:  con,
		Source:   func() types.PowerSource { return types.ExternalPower },
		ID:       func() [3]uint32 { return [3]uint32{0x686F7374, 0x73696D00, 0x00000001} },
		Debugger: cfg.DebuggerKept,
	}, cfg)

	return &System{Board: b, Console: con}, nil
}
