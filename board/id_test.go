// board/id_test.go
package board

import (
	"testing"

	"nodeboard-go/types"
)

func TestUniqueIDLayout(t *testing.T) {
	h := newHarness(types.BatteryPower)
	id := h.b.UniqueID()

	// w0+w2 = 0x51111115 in bytes 4..7, w1 in bytes 0..3.
	want := [8]byte{0x22, 0x22, 0x22, 0x22, 0x15, 0x11, 0x11, 0x51}
	if id != want {
		t.Errorf("id = %x, want %x", id, want)
	}
}

func TestRandomSeedFoldsWords(t *testing.T) {
	h := newHarness(types.BatteryPower)
	if seed := h.b.RandomSeed(); seed != 0x11111111^0x22222222^0x40000004 {
		t.Errorf("seed = %#x", seed)
	}
}
