// critical/critical.go
//
// Package critical provides the interrupt-masked region used to make
// multi-register hardware transitions appear atomic to interrupt handlers.
package critical

import "nodeboard-go/mcu"

// Token holds the interrupt-enable state captured by Begin. It is owned by
// the caller for the duration of exactly one Begin/End pair.
type Token struct {
	state uintptr
	armed bool
}

// Section serializes hardware transitions against interrupt handlers.
// Sections are not nestable: a second Begin while one is open would
// otherwise restore the wrong mask on the inner End, silently re-enabling
// interrupts early. That misuse is enforced as a fault rather than allowed
// to corrupt the mask.
type Section struct {
	irq  mcu.IRQ
	open bool
}

func New(irq mcu.IRQ) *Section {
	return &Section{irq: irq}
}

// Begin captures the current interrupt state into t and masks interrupts.
func (s *Section) Begin(t *Token) {
	if s.open || t.armed {
		mcu.Fatal("critical: nested begin")
		return
	}
	t.state = s.irq.Disable()
	t.armed = true
	s.open = true
}

// End restores the interrupt state captured by the Begin that armed t.
func (s *Section) End(t *Token) {
	if !t.armed || !s.open {
		mcu.Fatal("critical: unmatched end")
		return
	}
	t.armed = false
	s.open = false
	s.irq.Restore(t.state)
}
