// x/fifo/fifo_test.go
package fifo

import (
	"sync"
	"testing"
)

func TestOrderAcrossWrap(t *testing.T) {
	r := New(64)

	const N = 2000
	src := make([]byte, N)
	for i := range src {
		src[i] = byte(i)
	}

	dst := make([]byte, N)
	p := src
	off := 0
	for off < N {
		if len(p) > 0 {
			// Small chunks force frequent wraps.
			step := len(p)
			if step > 7 {
				step = 7
			}
			n := r.Write(p[:step])
			p = p[n:]
		}
		off += r.Read(dst[off:])
	}

	for i := range dst {
		if dst[i] != byte(i) {
			t.Fatalf("byte %d: got %d want %d", i, dst[i], byte(i))
		}
	}
}

func TestFullAndEmpty(t *testing.T) {
	r := New(4)
	for i := 0; i < 4; i++ {
		if !r.Push(byte(i)) {
			t.Fatalf("write %d refused before full", i)
		}
	}
	if r.Push(9) {
		t.Fatal("write accepted on full ring")
	}
	if r.Space() != 0 || r.Available() != 4 {
		t.Fatalf("space=%d avail=%d", r.Space(), r.Available())
	}
	for i := 0; i < 4; i++ {
		b, ok := r.Pop()
		if !ok || b != byte(i) {
			t.Fatalf("read %d: got %d ok=%v", i, b, ok)
		}
	}
	if _, ok := r.Pop(); ok {
		t.Fatal("read succeeded on empty ring")
	}
}

func TestConcurrentProducerConsumer(t *testing.T) {
	r := New(128)
	const N = 50000

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		i := 0
		for i < N {
			if r.Push(byte(i)) {
				i++
			}
		}
	}()

	got := 0
	for got < N {
		b, ok := r.Pop()
		if !ok {
			continue
		}
		if b != byte(got) {
			t.Fatalf("byte %d: got %d", got, b)
		}
		got++
	}
	wg.Wait()
}
