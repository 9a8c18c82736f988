// cmd/boardtest/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"nodeboard-go/bus"
	"nodeboard-go/platform"
	"nodeboard-go/services/power"
	"nodeboard-go/types"
)

// ---------- Configuration ----------

const (
	replyTimeout = 2 * time.Second

	// Cycles of stop/wake to drive through the service.
	cyclesToRun = 5
)

// ---------- Topics ----------

func tState() bus.Topic   { return bus.T("power", "state") }
func tBattery() bus.Topic { return bus.T("power", "battery") }
func tWake() bus.Topic    { return bus.T("power", "event", "wake") }
func tCtrl(verb string) bus.Topic {
	return bus.T("power", "control", verb)
}

func main() {
	sys, err := platform.Setup(types.DefaultBoardConfig())
	if err != nil {
		fmt.Fprintln(os.Stderr, "setup:", err)
		os.Exit(1)
	}
	sys.Board.Init()

	mb := bus.NewBus(16)
	svc := power.New(sys.Board, power.Config{BatteryPeriod: time.Second})
	if err := svc.Start(context.Background(), mb.NewConnection("power")); err != nil {
		fmt.Fprintln(os.Stderr, "service:", err)
		os.Exit(1)
	}

	conn := mb.NewConnection("boardtest")
	defer conn.Disconnect()

	stateSub := conn.Subscribe(tState())
	wakeSub := conn.Subscribe(tWake())
	replySub := conn.Subscribe(bus.T("boardtest", "reply"))

	// Retained state arrives on subscribe.
	st := waitMsg(stateSub, "initial state")
	fmt.Printf("state: %+v\n", st.Payload)

	batt := waitMsg(conn.Subscribe(tBattery()), "battery")
	fmt.Printf("battery: %+v\n", batt.Payload)

	for i := 0; i < cyclesToRun; i++ {
		msg := conn.NewMessage(tCtrl("stop"), nil, false)
		msg.ReplyTo = bus.T("boardtest", "reply")
		conn.Publish(msg)

		rep := waitMsg(replySub, "stop reply")
		wake := waitMsg(wakeSub, "wake event")
		ev, _ := wake.Payload.(types.WakeEvent)
		fmt.Printf("cycle %d: reply=%v stops=%d\n", i+1, rep.Payload, ev.StopCycles)
	}

	fmt.Println("ok")
}

func waitMsg(sub *bus.Subscription, what string) *bus.Message {
	select {
	case m := <-sub.Channel():
		return m
	case <-time.After(replyTimeout):
		fmt.Fprintln(os.Stderr, "timeout waiting for", what)
		os.Exit(1)
		return nil
	}
}
