// platform/factories_stm32l1.go
//go:build stm32l1

package platform

import (
	"nodeboard-go/board"
	"nodeboard-go/clocks"
	"nodeboard-go/console"
	"nodeboard-go/drivers/sx1272"
	"nodeboard-go/mcu"
	"nodeboard-go/mcu/stm32l1"
	"nodeboard-go/types"
)

// Pad numbers, port-major (PA0=0, PB0=16, PC0=32 ...).
const (
	pinUartTX = 9  // PA9
	pinUartRX = 10 // PA10

	pinSpiSCK  = 21 // PB5
	pinSpiMISO = 22 // PB6
	pinSpiMOSI = 23 // PB7

	pinRadioNSS   = 4      // PA4
	pinRadioReset = 34     // PC2
	pinRadioDIO0  = 27     // PB11
	pinRadioDIO1  = 24     // PB8
	pinRadioDIO2  = 26     // PB10
	pinRadioDIO3  = 20     // PB4
	pinRadioAntSw = 32 + 1 // PC1
)

// ---------------- Pin adapters ----------------

// hwPin adapts the register-level pad to the board's pin surface.
type hwPin struct{ p stm32l1.Pin }

func (w hwPin) ConfigureOutput(initial bool) { w.p.SetOutput(initial) }
func (w hwPin) ConfigureInputPullDown()      { w.p.SetInput(stm32l1.PullDown) }
func (w hwPin) ConfigureAnalog()             { w.p.SetAnalog() }
func (w hwPin) Set(level bool)               { w.p.Set(level) }

// radioPin adapts the same pad type to the transceiver driver's surface.
type radioPin struct{ p stm32l1.Pin }

func (w radioPin) ConfigureOutput(initial bool) { w.p.SetOutput(initial) }
func (w radioPin) ConfigureAnalog()             { w.p.SetAnalog() }
func (w radioPin) Set(level bool)               { w.p.Set(level) }
func (w radioPin) Get() bool                    { return w.p.Get() }

func (w radioPin) ConfigureInput(pull sx1272.Pull) {
	switch pull {
	case sx1272.PullUp:
		w.p.SetInput(stm32l1.PullUp)
	case sx1272.PullDown:
		w.p.SetInput(stm32l1.PullDown)
	default:
		w.p.SetInput(stm32l1.PullNone)
	}
}

type hwPinFactory struct{}

func (hwPinFactory) ByNumber(n int) (board.Pin, bool) {
	p, ok := stm32l1.PinByNumber(n)
	if !ok {
		return nil, false
	}
	return hwPin{p: p}, true
}

func mustPin(n int) stm32l1.Pin {
	p, ok := stm32l1.PinByNumber(n)
	if !ok {
		mcu.Fatal("bad pin number")
	}
	return p
}

// ---------------- Assembly ----------------

// Setup wires the real register blocks. This board has no charger
// circuit, so the supply always classifies as battery.
func Setup(cfg types.BoardConfig) (*System, error) {
	uart := stm32l1.NewUART(stm32l1.UARTConfig{
		TX:   mustPin(pinUartTX),
		RX:   mustPin(pinUartRX),
		Baud: cfg.UARTBaud,
	})
	if err := uart.Init(); err != nil {
		return nil, err
	}
	con := console.New(uart, console.Config{
		FIFOSize: cfg.ConsoleFIFO,
		Echo:     cfg.ConsoleEcho,
	})

	bus := stm32l1.NewSPI(stm32l1.SPIConfig{
		SCK:  mustPin(pinSpiSCK),
		MISO: mustPin(pinSpiMISO),
		MOSI: mustPin(pinSpiMOSI),
	})
	radio := sx1272.New(bus, sx1272.Pins{
		NSS:   radioPin{p: mustPin(pinRadioNSS)},
		Reset: radioPin{p: mustPin(pinRadioReset)},
		DIO0:  radioPin{p: mustPin(pinRadioDIO0)},
		DIO1:  radioPin{p: mustPin(pinRadioDIO1)},
		DIO2:  radioPin{p: mustPin(pinRadioDIO2)},
		DIO3:  radioPin{p: mustPin(pinRadioDIO3)},
		AntSw: radioPin{p: mustPin(pinRadioAntSw)},
	})

	b := board.New(board.Deps{
		Clocks: clocks.New(stm32l1.NewClockControl(), clocks.Config{
			PLL:       mcu.PLLConfig{Mul: cfg.PLLMul, Div: cfg.PLLDiv},
			SysTickHz: cfg.SysTickHz,
		}),
		Power:    stm32l1.NewPowerControl(),
		IRQ:      stm32l1.IRQControl{},
		Pins:     hwPinFactory{},
		ADC:      &stm32l1.ADC{},
		RadioBus: bus,
		Radio:    radio,
		RTC:      &stm32l1.RTC{},
		Watchdog: &stm32l1.Watchdog{},
		Console:  con,
		Source:   func() types.PowerSource { return types.BatteryPower },
		ID:       stm32l1.UniqueWords,
		Debugger: cfg.DebuggerKept,
	}, cfg)

	return &System{Board: b, Console: con}, nil
}
