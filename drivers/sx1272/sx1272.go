// Package sx1272 provides the board-side I/O lifecycle for the SX1272 LoRa
// transceiver: SPI register access, DIO lines, reset, antenna switch and
// TCXO control.
//
// Design notes:
// • SPI register protocol: address byte with wnr bit 7, then data; NSS framed.
// • The device is powered down by stop mode, so Init/Deinit run every
//   sleep cycle and must be idempotent.
// • Deinit parks every pin in its minimum-leakage electrical state.

package sx1272

import (
	"errors"
	"time"

	"tinygo.org/x/drivers"
)

// ---------------- Top level vars ----------------

var ErrNotInitialized = errors.New("sx1272: io not initialized")

// ---------------- Pin abstraction ----------------

// Pull selects the input pull resistor.
type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

// Pin is the minimal GPIO surface the driver needs. Platform packages
// adapt machine pins to it; tests inject fakes.
type Pin interface {
	ConfigureOutput(initial bool)
	ConfigureInput(pull Pull)
	// ConfigureAnalog parks the pin in its lowest-leakage state.
	ConfigureAnalog()
	Set(level bool)
	Get() bool
}

// Pins is the board wiring for the transceiver.
type Pins struct {
	NSS   Pin
	Reset Pin
	DIO0  Pin
	DIO1  Pin
	DIO2  Pin
	DIO3  Pin

	AntSw Pin // antenna switch power
	TCXO  Pin // oscillator enable, nil when the board has a crystal
	Dbg1  Pin // scope hooks, nil in production builds
	Dbg2  Pin
}

// ---------------- Device ----------------

type Device struct {
	spi  drivers.SPI
	pins Pins

	inited bool

	// Fixed buffers to avoid per-call heap allocations.
	w [2]byte
	r [2]byte
}

func New(spi drivers.SPI, pins Pins) *Device {
	return &Device{spi: spi, pins: pins}
}

// IoInit configures the DIO inputs and deselects the chip. Safe to call on
// every wake; reconfiguring an already-configured pin is a no-op
// electrically.
func (d *Device) IoInit() error {
	d.pins.NSS.ConfigureOutput(true)
	d.pins.DIO0.ConfigureInput(PullNone)
	d.pins.DIO1.ConfigureInput(PullNone)
	d.pins.DIO2.ConfigureInput(PullNone)
	d.pins.DIO3.ConfigureInput(PullNone)
	d.inited = true
	return nil
}

// IoDeinit parks the transceiver pins for stop mode.
func (d *Device) IoDeinit() error {
	d.pins.NSS.ConfigureAnalog()
	d.pins.DIO0.ConfigureAnalog()
	d.pins.DIO1.ConfigureAnalog()
	d.pins.DIO2.ConfigureAnalog()
	d.pins.DIO3.ConfigureAnalog()
	d.inited = false
	return nil
}

// DbgInit drives the scope hook pins low. First cold boot only.
func (d *Device) DbgInit() {
	if d.pins.Dbg1 != nil {
		d.pins.Dbg1.ConfigureOutput(false)
	}
	if d.pins.Dbg2 != nil {
		d.pins.Dbg2.ConfigureOutput(false)
	}
}

// TcxoInit powers the external oscillator and waits for it to settle.
// First cold boot only; a nil TCXO pin means the board runs on a crystal.
func (d *Device) TcxoInit() {
	if d.pins.TCXO == nil {
		return
	}
	d.pins.TCXO.ConfigureOutput(true)
	time.Sleep(5 * time.Millisecond)
}

// Reset pulses the reset line per datasheet (high >100µs, then release and
// wait 6ms for the chip to come up).
func (d *Device) Reset() {
	d.pins.Reset.ConfigureOutput(true)
	time.Sleep(time.Millisecond)
	d.pins.Reset.ConfigureInput(PullNone)
	time.Sleep(6 * time.Millisecond)
}

// AntSwInit powers the antenna switch.
func (d *Device) AntSwInit() {
	if d.pins.AntSw != nil {
		d.pins.AntSw.ConfigureOutput(true)
	}
}

// AntSwDeinit parks the antenna switch pin.
func (d *Device) AntSwDeinit() {
	if d.pins.AntSw != nil {
		d.pins.AntSw.ConfigureAnalog()
	}
}

// SetAntSwLowPower toggles the switch supply around sleep windows.
func (d *Device) SetAntSwLowPower(low bool) {
	if d.pins.AntSw == nil {
		return
	}
	if low {
		d.AntSwDeinit()
	} else {
		d.AntSwInit()
	}
}

// Initialized reports whether the board I/O is currently configured.
func (d *Device) Initialized() bool { return d.inited }

// ---------------- Register access ----------------

const (
	regPaConfig = 0x09
	wnr         = 0x80 // write bit in the address byte
)

// WriteRegister writes one transceiver register over SPI.
func (d *Device) WriteRegister(addr, value uint8) error {
	if !d.inited {
		return ErrNotInitialized
	}
	d.pins.NSS.Set(false)
	d.w[0] = addr | wnr
	d.w[1] = value
	err := d.spi.Tx(d.w[:2], nil)
	d.pins.NSS.Set(true)
	return err
}

// ReadRegister reads one transceiver register over SPI.
func (d *Device) ReadRegister(addr uint8) (uint8, error) {
	if !d.inited {
		return 0, ErrNotInitialized
	}
	d.pins.NSS.Set(false)
	d.w[0] = addr &^ wnr
	d.w[1] = 0
	err := d.spi.Tx(d.w[:2], d.r[:2])
	d.pins.NSS.Set(true)
	if err != nil {
		return 0, err
	}
	return d.r[1], nil
}

// SetRfTxPower programs the PA output power. The SKiM-class boards use the
// PA_BOOST pin, 2..17 dBm.
func (d *Device) SetRfTxPower(dBm int8) error {
	if dBm < 2 {
		dBm = 2
	}
	if dBm > 17 {
		dBm = 17
	}
	// PA_BOOST select (bit 7) | OutputPower = dBm - 2
	return d.WriteRegister(regPaConfig, 0x80|uint8(dBm-2))
}
