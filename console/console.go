// console/console.go
//
// Package console owns the serial console's transmit and receive FIFOs.
// Byte-level framing on the wire belongs to the UART; the console moves
// bytes between the application and the port through two SPSC rings sized
// at cold boot and reused for the life of the power cycle.
package console

import (
	"nodeboard-go/x/conv"
	"nodeboard-go/x/fifo"
)

// Port is the UART surface the console drains into and fills from.
// Platform packages adapt the hardware UART to it.
type Port interface {
	WriteByte(b byte) error
	Write(p []byte) (int, error)
	Buffered() int
	ReadByte() (byte, error)
}

type Config struct {
	FIFOSize int // bytes per direction, power of two
	Echo     bool
}

type Console struct {
	port   Port
	tx, rx *fifo.Ring
	echo   bool
	inited bool
}

func New(port Port, cfg Config) *Console {
	size := cfg.FIFOSize
	if size == 0 {
		size = 1024
	}
	return &Console{
		port: port,
		tx:   fifo.New(size),
		rx:   fifo.New(size),
		echo: cfg.Echo,
	}
}

// Init marks the console ready. The rings are allocated once in New and
// survive sleep cycles; Init is idempotent.
func (c *Console) Init() error {
	c.inited = true
	return nil
}

func (c *Console) Initialized() bool { return c.inited }

// Write queues p for transmit, draining to the port as needed. It blocks
// until the whole slice is accepted, matching stdio semantics.
func (c *Console) Write(p []byte) (int, error) {
	total := 0
	for len(p) > 0 {
		n := c.tx.Write(p)
		p = p[n:]
		total += n
		c.flush()
	}
	return total, nil
}

func (c *Console) WriteString(s string) { _, _ = c.Write([]byte(s)) }

// WriteInt and WriteHex format without fmt so the shell stays cheap on MCU.
func (c *Console) WriteInt(n int64) {
	var buf [20]byte
	_, _ = c.Write(conv.Itoa(buf[:], n))
}

func (c *Console) WriteHex(n uint32) {
	var buf [8]byte
	_, _ = c.Write(conv.U32Hex(buf[:], n))
}

// flush moves queued transmit bytes to the port.
func (c *Console) flush() {
	var buf [64]byte
	for {
		n := c.tx.Read(buf[:])
		if n == 0 {
			return
		}
		rest := buf[:n]
		for len(rest) > 0 {
			w, err := c.port.Write(rest)
			if err != nil {
				return
			}
			rest = rest[w:]
		}
	}
}

// Pump moves received bytes from the port into the RX ring and drains any
// pending transmit. Called from the main loop between low-power entries.
func (c *Console) Pump() {
	for c.port.Buffered() > 0 {
		b, err := c.port.ReadByte()
		if err != nil {
			break
		}
		if !c.rx.Push(b) {
			break // drop on overflow, never block the pump
		}
		if c.echo {
			_ = c.port.WriteByte(b)
		}
	}
	c.flush()
}

// Pop takes one received byte, reporting false when none is pending.
func (c *Console) Pop() (byte, bool) {
	return c.rx.Pop()
}
