// drivers/sx1272/sx1272_test.go
package sx1272

import "testing"

// fakeSPI records the last transaction, mirroring the host I2C fake used
// elsewhere for driver tests.
type fakeSPI struct {
	lastW []byte
	rn    int
	reply []byte
}

func (f *fakeSPI) Tx(w, r []byte) error {
	f.lastW = append([]byte(nil), w...)
	f.rn = len(r)
	if len(f.reply) > 0 {
		copy(r, f.reply)
	}
	return nil
}

func (f *fakeSPI) Transfer(b byte) (byte, error) { return 0, nil }

type fakePin struct {
	mode  string // "out" | "in" | "analog"
	level bool
}

func (p *fakePin) ConfigureOutput(initial bool) { p.mode = "out"; p.level = initial }
func (p *fakePin) ConfigureInput(_ Pull)        { p.mode = "in" }
func (p *fakePin) ConfigureAnalog()             { p.mode = "analog" }
func (p *fakePin) Set(level bool)               { p.level = level }
func (p *fakePin) Get() bool                    { return p.level }

func newTestDevice() (*Device, *fakeSPI, *Pins) {
	spi := &fakeSPI{}
	pins := &Pins{
		NSS: &fakePin{}, Reset: &fakePin{},
		DIO0: &fakePin{}, DIO1: &fakePin{}, DIO2: &fakePin{}, DIO3: &fakePin{},
		AntSw: &fakePin{}, TCXO: &fakePin{},
	}
	return New(spi, *pins), spi, pins
}

func TestIoInitDeinitLifecycle(t *testing.T) {
	d, _, pins := newTestDevice()

	if err := d.IoInit(); err != nil {
		t.Fatal(err)
	}
	if !d.Initialized() {
		t.Fatal("not initialized after IoInit")
	}
	if nss := pins.NSS.(*fakePin); nss.mode != "out" || !nss.level {
		t.Errorf("NSS not deselected output: %+v", nss)
	}
	if dio := pins.DIO0.(*fakePin); dio.mode != "in" {
		t.Errorf("DIO0 not input: %+v", dio)
	}

	if err := d.IoDeinit(); err != nil {
		t.Fatal(err)
	}
	if d.Initialized() {
		t.Fatal("still initialized after IoDeinit")
	}
	for _, p := range []Pin{pins.NSS, pins.DIO0, pins.DIO1, pins.DIO2, pins.DIO3} {
		if p.(*fakePin).mode != "analog" {
			t.Errorf("pin not parked analog: %+v", p)
		}
	}
}

func TestRegisterAccessRequiresInit(t *testing.T) {
	d, _, _ := newTestDevice()
	if err := d.WriteRegister(0x01, 0xAA); err != ErrNotInitialized {
		t.Fatalf("want ErrNotInitialized, got %v", err)
	}
}

func TestWriteRegisterFrame(t *testing.T) {
	d, spi, pins := newTestDevice()
	_ = d.IoInit()

	if err := d.WriteRegister(0x09, 0x8F); err != nil {
		t.Fatal(err)
	}
	if len(spi.lastW) != 2 || spi.lastW[0] != 0x89 || spi.lastW[1] != 0x8F {
		t.Errorf("frame = %#v", spi.lastW)
	}
	if !pins.NSS.(*fakePin).level {
		t.Error("NSS left asserted after transaction")
	}
}

func TestSetRfTxPowerClamps(t *testing.T) {
	d, spi, _ := newTestDevice()
	_ = d.IoInit()

	_ = d.SetRfTxPower(20)
	if spi.lastW[1] != 0x80|15 {
		t.Errorf("clamped power byte = %#x", spi.lastW[1])
	}
	_ = d.SetRfTxPower(0)
	if spi.lastW[1] != 0x80 {
		t.Errorf("floor power byte = %#x", spi.lastW[1])
	}
}
