// cmd/nodemon/main.go
//
// nodemon attaches a terminal to a node's debug console over a serial
// adapter. Bytes are relayed both ways unmodified; the shell on the node
// handles echo and line editing.
package main

import (
	"fmt"
	"io"
	"os"

	"go.bug.st/serial"
)

const defaultBaud = 115200

func main() {
	if len(os.Args) < 2 {
		ports, err := serial.GetPortsList()
		if err == nil && len(ports) > 0 {
			fmt.Fprintln(os.Stderr, "usage: nodemon <port>, e.g.", ports[0])
		} else {
			fmt.Fprintln(os.Stderr, "usage: nodemon <port>")
		}
		os.Exit(2)
	}

	port, err := serial.Open(os.Args[1], &serial.Mode{BaudRate: defaultBaud})
	if err != nil {
		fmt.Fprintln(os.Stderr, "open:", err)
		os.Exit(1)
	}
	defer port.Close()

	go func() {
		if _, err := io.Copy(port, os.Stdin); err != nil {
			fmt.Fprintln(os.Stderr, "stdin:", err)
		}
		port.Close()
	}()

	if _, err := io.Copy(os.Stdout, port); err != nil && err != io.EOF {
		fmt.Fprintln(os.Stderr, "port:", err)
		os.Exit(1)
	}
}
