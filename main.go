package main

import (
	"context"
	"time"

	"nodeboard-go/board"
	"nodeboard-go/bus"
	"nodeboard-go/console"
	"nodeboard-go/lpm"
	"nodeboard-go/mcu"
	"nodeboard-go/platform"
	"nodeboard-go/services/power"
	"nodeboard-go/types"
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("boot")

	sys, err := platform.Setup(types.DefaultBoardConfig())
	if err != nil {
		mcu.Fatal("platform: " + err.Error())
	}
	b := sys.Board
	b.Init()

	mb := bus.NewBus(16)
	svc := power.New(b, power.Config{})
	if err := svc.Start(context.Background(), mb.NewConnection("power")); err != nil {
		mcu.Fatal("power service: " + err.Error())
	}

	sh := console.NewShell(sys.Console)
	registerCommands(sh, b)

	// The console keeps a stop veto so the prompt stays reachable; the
	// idle loop then naps shallowly between polls.
	b.LPM().SetStopMode(lpm.IDConsole, false)

	for {
		sys.Console.Pump()
		sh.Poll()
		b.LowPowerHandler()
	}
}

func registerCommands(sh *console.Shell, b *board.Board) {
	sh.Register("batt", "battery voltage and level", func(c *console.Console, _ []string) error {
		c.WriteString("mV=")
		c.WriteInt(int64(b.MeasureBatteryVoltage()))
		c.WriteString(" level=")
		c.WriteInt(int64(b.BatteryLevel()))
		c.WriteString("\r\n")
		return nil
	})

	sh.Register("id", "device unique ID and seed", func(c *console.Console, _ []string) error {
		id := b.UniqueID()
		for _, x := range id {
			c.WriteHex(uint32(x))
		}
		c.WriteString(" seed=")
		c.WriteHex(b.RandomSeed())
		c.WriteString("\r\n")
		return nil
	})

	sh.Register("state", "sequencer state", func(c *console.Console, _ []string) error {
		c.WriteString(b.Lifecycle().String())
		c.WriteString(" ")
		c.WriteString(b.Mode().String())
		c.WriteString(" stops=")
		c.WriteInt(int64(b.StopCycles()))
		c.WriteString("\r\n")
		return nil
	})

	sh.Register("stop", "run one stop/wake cycle", func(c *console.Console, _ []string) error {
		b.EnterStop()
		b.ExitStop()
		c.WriteString("woke\r\n")
		return nil
	})

	sh.Register("reset", "system reset", func(c *console.Console, _ []string) error {
		b.Reset()
		return nil
	})
}
