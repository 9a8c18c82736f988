// x/fifo/fifo.go
package fifo

import "sync/atomic"

// Ring is a single-producer, single-consumer byte ring. The console uses
// one per direction: the main context on one side, the UART interrupt
// handler on the other. Indices are monotonic uint32s; the buffer length
// must be a power of two.
type Ring struct {
	buf  []byte
	mask uint32
	rd   atomic.Uint32 // consumer index (monotonic)
	wr   atomic.Uint32 // producer index (monotonic)
}

func New(size int) *Ring {
	if size < 2 || (size&(size-1)) != 0 {
		panic("fifo: size must be power of two >= 2")
	}
	return &Ring{
		buf:  make([]byte, size),
		mask: uint32(size - 1),
	}
}

func (r *Ring) size() uint32 { return uint32(len(r.buf)) }

// Space reports how many bytes the producer can write without blocking.
func (r *Ring) Space() int {
	return int(r.size() - (r.wr.Load() - r.rd.Load()))
}

// Available reports how many bytes the consumer can read.
func (r *Ring) Available() int {
	return int(r.wr.Load() - r.rd.Load())
}

// Write copies as much of src as fits and returns the number consumed.
// It never blocks.
func (r *Ring) Write(src []byte) (n int) {
	if len(src) == 0 {
		return 0
	}
	rd := r.rd.Load()
	wr := r.wr.Load()
	space := int(r.size() - (wr - rd))
	if space <= 0 {
		return 0
	}
	if len(src) < space {
		space = len(src)
	}
	n = space

	wrIdx := wr & r.mask
	first := int(r.size() - wrIdx)
	if first > n {
		first = n
	}
	copy(r.buf[wrIdx:wrIdx+uint32(first)], src[:first])
	if second := n - first; second > 0 {
		copy(r.buf[:second], src[first:n])
	}
	r.wr.Store(wr + uint32(n)) // release
	return n
}

// Read copies up to len(dst) bytes out and returns the number produced.
// It never blocks.
func (r *Ring) Read(dst []byte) (n int) {
	if len(dst) == 0 {
		return 0
	}
	rd := r.rd.Load()
	wr := r.wr.Load() // acquire
	avail := int(wr - rd)
	if avail <= 0 {
		return 0
	}
	if len(dst) < avail {
		avail = len(dst)
	}
	n = avail

	rdIdx := rd & r.mask
	first := int(r.size() - rdIdx)
	if first > n {
		first = n
	}
	copy(dst[:first], r.buf[rdIdx:rdIdx+uint32(first)])
	if second := n - first; second > 0 {
		copy(dst[first:n], r.buf[:second])
	}
	r.rd.Store(rd + uint32(n)) // release
	return n
}

// Push writes a single byte, reporting false when the ring is full.
func (r *Ring) Push(b byte) bool {
	var one [1]byte
	one[0] = b
	return r.Write(one[:]) == 1
}

// Pop reads a single byte, reporting false when the ring is empty.
func (r *Ring) Pop() (byte, bool) {
	var one [1]byte
	if r.Read(one[:]) != 1 {
		return 0, false
	}
	return one[0], true
}
