// critical/critical_test.go
package critical

import (
	"testing"

	"nodeboard-go/mcu"
	"nodeboard-go/mcu/mcutest"
)

func TestRestoresEnabledState(t *testing.T) {
	irq := &mcutest.IRQ{Masked: false}
	s := New(irq)

	var tok Token
	s.Begin(&tok)
	if !irq.Masked {
		t.Fatal("interrupts not masked inside section")
	}
	s.End(&tok)
	if irq.Masked {
		t.Fatal("interrupts not restored to enabled")
	}
}

func TestRestoresDisabledState(t *testing.T) {
	irq := &mcutest.IRQ{Masked: true}
	s := New(irq)

	var tok Token
	s.Begin(&tok)
	s.End(&tok)
	if !irq.Masked {
		t.Fatal("interrupts should remain masked after section")
	}
}

func TestNestedBeginFaults(t *testing.T) {
	mcu.FatalHook = func(reason string) { panic(reason) }
	defer func() { mcu.FatalHook = nil }()

	irq := &mcutest.IRQ{}
	s := New(irq)

	var outer, inner Token
	s.Begin(&outer)
	defer func() {
		if recover() == nil {
			t.Fatal("nested Begin did not fault")
		}
	}()
	s.Begin(&inner)
}

func TestUnmatchedEndFaults(t *testing.T) {
	mcu.FatalHook = func(reason string) { panic(reason) }
	defer func() { mcu.FatalHook = nil }()

	irq := &mcutest.IRQ{}
	s := New(irq)

	var tok Token
	defer func() {
		if recover() == nil {
			t.Fatal("End without Begin did not fault")
		}
	}()
	s.End(&tok)
}
