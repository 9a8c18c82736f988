// console/console_test.go
package console

import (
	"strings"
	"testing"

	"nodeboard-go/errcode"
)

// loopPort is an in-memory UART: writes accumulate, reads come from a
// scripted input.
type loopPort struct {
	out []byte
	in  []byte
}

func (p *loopPort) WriteByte(b byte) error { p.out = append(p.out, b); return nil }
func (p *loopPort) Write(b []byte) (int, error) {
	p.out = append(p.out, b...)
	return len(b), nil
}
func (p *loopPort) Buffered() int { return len(p.in) }
func (p *loopPort) ReadByte() (byte, error) {
	b := p.in[0]
	p.in = p.in[1:]
	return b, nil
}

func TestWriteDrainsThroughFIFO(t *testing.T) {
	port := &loopPort{}
	c := New(port, Config{FIFOSize: 16})
	_ = c.Init()

	msg := strings.Repeat("abcdefgh", 16) // larger than the FIFO
	n, err := c.Write([]byte(msg))
	if err != nil || n != len(msg) {
		t.Fatalf("n=%d err=%v", n, err)
	}
	if string(port.out) != msg {
		t.Fatalf("port saw %q", port.out)
	}
}

func TestPumpEchoesAndBuffers(t *testing.T) {
	port := &loopPort{in: []byte("hi")}
	c := New(port, Config{FIFOSize: 16, Echo: true})
	_ = c.Init()

	c.Pump()

	if string(port.out) != "hi" {
		t.Errorf("echo = %q", port.out)
	}
	b, ok := c.Pop()
	if !ok || b != 'h' {
		t.Fatalf("first byte = %c ok=%v", b, ok)
	}
}

func TestShellDispatch(t *testing.T) {
	port := &loopPort{in: []byte("greet world\r")}
	c := New(port, Config{FIFOSize: 64})
	_ = c.Init()

	sh := NewShell(c)
	var got []string
	sh.Register("greet", "say hello", func(c *Console, args []string) error {
		got = args
		c.WriteString("hello\r\n")
		return nil
	})

	c.Pump()
	sh.Poll()

	if len(got) != 1 || got[0] != "world" {
		t.Fatalf("args = %v", got)
	}
	if !strings.Contains(string(port.out), "hello") {
		t.Errorf("output = %q", port.out)
	}
}

func TestShellQuotedArgs(t *testing.T) {
	port := &loopPort{}
	c := New(port, Config{FIFOSize: 64})
	sh := NewShell(c)

	var got []string
	sh.Register("set", "", func(_ *Console, args []string) error {
		got = args
		return nil
	})
	sh.Exec(`set "two words" three`)

	if len(got) != 2 || got[0] != "two words" || got[1] != "three" {
		t.Fatalf("args = %v", got)
	}
}

func TestShellUnknownCommand(t *testing.T) {
	port := &loopPort{}
	c := New(port, Config{FIFOSize: 64})
	sh := NewShell(c)

	sh.Exec("bogus")

	if !strings.Contains(string(port.out), string(errcode.UnknownCommand)) {
		t.Errorf("output = %q", port.out)
	}
}

func TestShellBackspaceEditing(t *testing.T) {
	port := &loopPort{in: []byte("stax\x08tus\r")}
	c := New(port, Config{FIFOSize: 64})
	sh := NewShell(c)

	var ran bool
	sh.Register("status", "", func(c *Console, args []string) error {
		_ = args
		ran = true
		return nil
	})

	c.Pump()
	sh.Poll()
	if !ran {
		t.Error("backspace-corrected command did not run")
	}
}
