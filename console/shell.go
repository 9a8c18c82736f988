// console/shell.go
package console

import (
	"github.com/google/shlex"

	"nodeboard-go/errcode"
)

// HandlerFunc runs one shell command. Output goes through the console.
type HandlerFunc func(c *Console, args []string) error

type command struct {
	name string
	help string
	fn   HandlerFunc
}

// Shell is a minimal line-oriented command dispatcher on top of the
// console. One instance lives for the whole power cycle; Poll is called
// from the main loop.
type Shell struct {
	c    *Console
	cmds []command
	line []byte
	max  int
}

func NewShell(c *Console) *Shell {
	sh := &Shell{c: c, max: 128}
	sh.Register("help", "list commands", func(c *Console, _ []string) error {
		for _, cmd := range sh.cmds {
			c.WriteString(cmd.name)
			c.WriteString("  ")
			c.WriteString(cmd.help)
			c.WriteString("\r\n")
		}
		return nil
	})
	return sh
}

func (sh *Shell) Register(name, help string, fn HandlerFunc) {
	sh.cmds = append(sh.cmds, command{name: name, help: help, fn: fn})
}

// Poll consumes pending input and executes any completed line.
func (sh *Shell) Poll() {
	for {
		b, ok := sh.c.Pop()
		if !ok {
			return
		}
		switch b {
		case '\r', '\n':
			if len(sh.line) > 0 {
				sh.Exec(string(sh.line))
				sh.line = sh.line[:0]
			}
		case 0x08, 0x7F: // backspace
			if len(sh.line) > 0 {
				sh.line = sh.line[:len(sh.line)-1]
			}
		default:
			if len(sh.line) < sh.max {
				sh.line = append(sh.line, b)
			}
		}
	}
}

// Exec tokenizes and dispatches one command line. Errors are reported on
// the console by their stable code.
func (sh *Shell) Exec(line string) {
	args, err := shlex.Split(line)
	if err != nil || len(args) == 0 {
		sh.report(errcode.InvalidParams)
		return
	}
	for _, cmd := range sh.cmds {
		if cmd.name == args[0] {
			if err := cmd.fn(sh.c, args[1:]); err != nil {
				sh.report(errcode.Of(err))
			}
			return
		}
	}
	sh.report(errcode.UnknownCommand)
}

func (sh *Shell) report(code errcode.Code) {
	sh.c.WriteString("err: ")
	sh.c.WriteString(string(code))
	sh.c.WriteString("\r\n")
}
