// board/id.go
package board

// UniqueID assembles the node's 8-byte identifier from the device-unique
// ID words, little-endian, matching the layout radios and provisioning
// tools already expect.
func (b *Board) UniqueID() [8]byte {
	w := b.d.ID()
	sum := w[0] + w[2]
	var id [8]byte
	id[7] = byte(sum >> 24)
	id[6] = byte(sum >> 16)
	id[5] = byte(sum >> 8)
	id[4] = byte(sum)
	id[3] = byte(w[1] >> 24)
	id[2] = byte(w[1] >> 16)
	id[1] = byte(w[1] >> 8)
	id[0] = byte(w[1])
	return id
}

// RandomSeed folds the ID words into a 32-bit seed for protocol backoff.
func (b *Board) RandomSeed() uint32 {
	w := b.d.ID()
	return w[0] ^ w[1] ^ w[2]
}
