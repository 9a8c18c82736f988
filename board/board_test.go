// board/board_test.go
package board

import (
	"testing"
	"time"

	"nodeboard-go/clocks"
	"nodeboard-go/console"
	"nodeboard-go/lpm"
	"nodeboard-go/mcu"
	"nodeboard-go/mcu/mcutest"
	"nodeboard-go/types"
)

// ---------------- Fakes ----------------

type fakePeripheral struct {
	inits, deinits int
	up             bool
}

func (f *fakePeripheral) Init() error   { f.inits++; f.up = true; return nil }
func (f *fakePeripheral) Deinit() error { f.deinits++; f.up = false; return nil }

type fakeADC struct {
	fakePeripheral
	raw uint16
}

func (f *fakeADC) ReadChannel(ch uint8) (uint16, error) { return f.raw, nil }

type fakeRadio struct {
	ioInits, ioDeinits  int
	dbgInits, tcxoInits int
	up                  bool
}

func (f *fakeRadio) IoInit() error   { f.ioInits++; f.up = true; return nil }
func (f *fakeRadio) IoDeinit() error { f.ioDeinits++; f.up = false; return nil }
func (f *fakeRadio) DbgInit()        { f.dbgInits++ }
func (f *fakeRadio) TcxoInit()       { f.tcxoInits++ }

type fakeRTC struct {
	inits    int
	oneShots int
	recorded []time.Duration
}

func (f *fakeRTC) Init() error                       { f.inits++; return nil }
func (f *fakeRTC) RecordWakeLatency(d time.Duration) { f.recorded = append(f.recorded, d) }
func (f *fakeRTC) StartOneShot(_ time.Duration, fn func()) {
	f.oneShots++
	fn() // complete immediately
}

type fakeWatchdog struct{ starts int }

func (f *fakeWatchdog) Start() error { f.starts++; return nil }

type fakePin struct {
	mode  string
	level bool
}

func (p *fakePin) ConfigureOutput(initial bool) { p.mode = "out"; p.level = initial }
func (p *fakePin) ConfigureInputPullDown()      { p.mode = "pulldown" }
func (p *fakePin) ConfigureAnalog()             { p.mode = "analog" }
func (p *fakePin) Set(level bool)               { p.level = level }

type fakePins struct{ pins map[int]*fakePin }

func (f *fakePins) ByNumber(n int) (Pin, bool) {
	if f.pins == nil {
		f.pins = map[int]*fakePin{}
	}
	p, ok := f.pins[n]
	if !ok {
		p = &fakePin{}
		f.pins[n] = p
	}
	return p, true
}

type nullPort struct{}

func (nullPort) WriteByte(byte) error        { return nil }
func (nullPort) Write(p []byte) (int, error) { return len(p), nil }
func (nullPort) Buffered() int               { return 0 }
func (nullPort) ReadByte() (byte, error)     { return 0, nil }

// ---------------- Harness ----------------

type harness struct {
	b      *Board
	clkHW  *mcutest.Clocks
	power  *mcutest.Power
	irq    *mcutest.IRQ
	adc    *fakeADC
	spi    *fakePeripheral
	radio  *fakeRadio
	rtc    *fakeRTC
	wdt    *fakeWatchdog
	pins   *fakePins
	source types.PowerSource
}

func newHarness(source types.PowerSource) *harness {
	h := &harness{
		clkHW:  &mcutest.Clocks{},
		power:  &mcutest.Power{},
		irq:    &mcutest.IRQ{},
		adc:    &fakeADC{raw: 1800},
		spi:    &fakePeripheral{},
		radio:  &fakeRadio{},
		rtc:    &fakeRTC{},
		wdt:    &fakeWatchdog{},
		pins:   &fakePins{},
		source: source,
	}
	cfg := types.DefaultBoardConfig()
	cfg.LEDs = []int{1, 2, 3, 4}
	cfg.OscHSEIn, cfg.OscHSEOut = 10, 11
	cfg.OscLSEIn, cfg.OscLSEOut = 12, 13
	cfg.USBDM, cfg.USBDP = 20, 21
	ctl := clocks.New(h.clkHW, clocks.Config{PLL: mcu.PLLConfig{Mul: cfg.PLLMul, Div: cfg.PLLDiv}})
	h.b = New(Deps{
		Clocks:   ctl,
		Power:    h.power,
		IRQ:      h.irq,
		Pins:     h.pins,
		ADC:      h.adc,
		RadioBus: h.spi,
		Radio:    h.radio,
		RTC:      h.rtc,
		Watchdog: h.wdt,
		Console:  console.New(nullPort{}, console.Config{FIFOSize: 1024}),
		Source:   func() types.PowerSource { return h.source },
		ID:       func() [3]uint32 { return [3]uint32{0x11111111, 0x22222222, 0x40000004} },
	}, cfg)
	return h
}

func countEvents(log []string, ev string) int {
	n := 0
	for _, e := range log {
		if e == ev {
			n++
		}
	}
	return n
}

// ---------------- Tests ----------------

func TestColdBootBatteryScenario(t *testing.T) {
	h := newHarness(types.BatteryPower)
	h.b.Init()

	if h.b.Lifecycle() != types.Initialized {
		t.Error("lifecycle not initialized")
	}
	if !h.b.Calibrated() {
		t.Error("wake latency not calibrated on battery cold boot")
	}
	if !h.adc.up || !h.spi.up || !h.radio.up {
		t.Error("adc/radio not initialized")
	}
	if h.b.LPM().Next() != lpm.ModeStop {
		t.Errorf("off mode not disabled on battery power; next=%v", h.b.LPM().Next())
	}
	if h.radio.dbgInits != 1 || h.radio.tcxoInits != 1 {
		t.Errorf("debug/tcxo init counts: %d/%d", h.radio.dbgInits, h.radio.tcxoInits)
	}
	if h.wdt.starts != 1 {
		t.Errorf("watchdog starts = %d", h.wdt.starts)
	}
}

func TestExternalPowerSkipsCalibration(t *testing.T) {
	h := newHarness(types.ExternalPower)
	h.b.Init()
	if h.b.Calibrated() || h.rtc.oneShots != 0 {
		t.Error("calibration ran on external power")
	}
}

func TestSingleColdBoot(t *testing.T) {
	h := newHarness(types.BatteryPower)
	for i := 0; i < 5; i++ {
		h.b.Init()
	}
	// The LSE only comes up in the cold sequence.
	if n := countEvents(h.clkHW.Log(), "lse_on"); n != 1 {
		t.Errorf("cold sequence ran %d times", n)
	}
	if h.rtc.oneShots != 1 {
		t.Errorf("calibration armed %d times", h.rtc.oneShots)
	}
	if h.rtc.inits != 1 {
		t.Errorf("rtc initialized %d times", h.rtc.inits)
	}
	if h.b.Lifecycle() != types.Initialized {
		t.Error("lifecycle reverted")
	}
	// Peripherals powered down by stop mode are rebuilt every entry.
	if h.adc.inits != 5 || h.radio.ioInits != 5 {
		t.Errorf("adc/radio inits = %d/%d", h.adc.inits, h.radio.ioInits)
	}
}

func TestStopWakeRoundTrip(t *testing.T) {
	h := newHarness(types.BatteryPower)
	h.b.Init()
	before := h.b.Lifecycle()

	// At halt time the teardown must already have happened.
	h.power.OnStop = func() {
		if h.radio.up || h.adc.up {
			t.Error("peripherals still up at halt")
		}
		if !h.power.PVDOff || !h.power.WakeCleared || !h.power.ULPOn || !h.power.FastWakeOn {
			t.Error("low-power features not armed before halt")
		}
		h.clkHW.DropToReset()
	}

	h.b.EnterStop()
	h.b.ExitStop()

	if h.power.StopCount != 1 || !h.power.LowPowerReg {
		t.Errorf("stop entry: count=%d lowPowerReg=%v", h.power.StopCount, h.power.LowPowerReg)
	}
	if !h.b.d.Clocks.Running() {
		t.Error("system clock not on PLL after wake")
	}
	if !h.radio.up || !h.adc.up {
		t.Error("radio/adc not rebuilt after wake")
	}
	if h.b.Lifecycle() != before {
		t.Error("lifecycle changed across stop/wake")
	}
	if h.b.StopCycles() != 1 {
		t.Errorf("stop cycles = %d", h.b.StopCycles())
	}
	if h.b.Mode() != types.ModeRun {
		t.Errorf("mode = %v", h.b.Mode())
	}
}

func TestRepeatedStopCycles(t *testing.T) {
	h := newHarness(types.BatteryPower)
	h.b.Init()
	h.power.OnStop = func() { h.clkHW.DropToReset() }

	const cycles = 100
	for i := 0; i < cycles; i++ {
		h.b.EnterStop()
		h.b.ExitStop()
	}
	if h.b.StopCycles() != cycles {
		t.Errorf("stop cycles = %d", h.b.StopCycles())
	}
	if !h.b.d.Clocks.Running() {
		t.Error("clock not running after repeated cycles")
	}
	if n := countEvents(h.clkHW.Log(), "lse_on"); n != 1 {
		t.Errorf("cold sequence re-ran after %d cycles", n)
	}
	if h.irq.Masked {
		t.Error("interrupts left masked after cycles")
	}
}

func TestEnterSleepIsShallow(t *testing.T) {
	h := newHarness(types.BatteryPower)
	h.b.Init()
	h.b.EnterSleep()

	if h.power.SleepCount != 1 {
		t.Errorf("sleep count = %d", h.power.SleepCount)
	}
	if h.radio.ioDeinits != 0 {
		t.Error("sleep mode tore down peripherals")
	}
	if h.b.Mode() != types.ModeRun {
		t.Error("mode not back to run after sleep")
	}
}

func TestLowPowerHandlerPicksStopOnBattery(t *testing.T) {
	h := newHarness(types.BatteryPower)
	h.b.Init()
	h.power.OnStop = func() { h.clkHW.DropToReset() }

	h.b.LowPowerHandler()

	if h.power.StopCount != 1 {
		t.Errorf("stop count = %d", h.power.StopCount)
	}
	if h.power.StandbyCount != 0 {
		t.Error("standby entered on battery power")
	}
	if h.irq.Masked {
		t.Error("interrupts left masked")
	}
}

func TestUnusedIoParkedOnBattery(t *testing.T) {
	h := newHarness(types.BatteryPower)
	h.b.Init()
	for _, n := range []int{20, 21} {
		p, _ := h.pins.ByNumber(n)
		if p.(*fakePin).mode != "analog" {
			t.Errorf("USB pin %d mode = %q", n, p.(*fakePin).mode)
		}
	}
}

func TestOscPinsParkedOnStop(t *testing.T) {
	h := newHarness(types.BatteryPower)
	h.b.Init()
	h.b.EnterStop()

	hse, _ := h.pins.ByNumber(10)
	lse, _ := h.pins.ByNumber(12)
	if hse.(*fakePin).mode != "analog" {
		t.Errorf("HSE pin mode = %q", hse.(*fakePin).mode)
	}
	if lse.(*fakePin).mode != "pulldown" {
		t.Errorf("LSE pin mode = %q", lse.(*fakePin).mode)
	}
}
