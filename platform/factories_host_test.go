// platform/factories_host_test.go
//go:build !rp2040 && !rp2350 && !stm32l1

package platform

import (
	"testing"

	"nodeboard-go/console"
	"nodeboard-go/errcode"
	"nodeboard-go/types"
	"nodeboard-go/x/fifo"
)

var _ console.Port = (*hostPort)(nil)

func TestHostPortReadByteContract(t *testing.T) {
	p := &hostPort{rx: fifo.New(16)}

	// Empty ring: the port reports it as an error, never a zero byte.
	if _, err := p.ReadByte(); err != errcode.NoData {
		t.Fatalf("empty read err = %v", err)
	}

	p.rx.Write([]byte("ok"))
	for _, want := range []byte("ok") {
		b, err := p.ReadByte()
		if err != nil || b != want {
			t.Fatalf("read = %c, %v; want %c", b, err, want)
		}
	}
	if _, err := p.ReadByte(); err != errcode.NoData {
		t.Fatalf("drained read err = %v", err)
	}
}

func TestSetupWiresConsole(t *testing.T) {
	sys, err := Setup(types.DefaultBoardConfig())
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if sys.Board == nil || sys.Console == nil {
		t.Fatal("incomplete system")
	}
}
