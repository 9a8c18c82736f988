// services/power/service.go
//
// The power service is the bus face of the board sequencer: it publishes
// retained state after every transition and executes control verbs. The
// sequencer itself stays synchronous; this loop is the only place that
// calls it once the application is up.
package power

import (
	"context"
	"time"

	"nodeboard-go/board"
	"nodeboard-go/bus"
	"nodeboard-go/errcode"
	"nodeboard-go/types"
	"nodeboard-go/x/timex"
)

var (
	topicState   = bus.T("power", "state")
	topicBattery = bus.T("power", "battery")
	topicWake    = bus.T("power", "event", "wake")
	topicControl = bus.T("power", "control", bus.Wildcard)
)

type Config struct {
	// BatteryPeriod is how often battery telemetry is sampled.
	BatteryPeriod time.Duration
}

type Service struct {
	b   *board.Board
	cfg Config
}

func New(b *board.Board, cfg Config) *Service {
	if cfg.BatteryPeriod <= 0 {
		cfg.BatteryPeriod = 60 * time.Second
	}
	return &Service{b: b, cfg: cfg}
}

// Start runs the service loop until ctx is cancelled. The control
// subscription is taken before Start returns so commands published right
// after it cannot be lost.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	ctrlSub := conn.Subscribe(topicControl)
	go s.loop(ctx, conn, ctrlSub)
	return nil
}

func (s *Service) loop(ctx context.Context, conn *bus.Connection, ctrlSub *bus.Subscription) {
	defer conn.Unsubscribe(ctrlSub)

	s.publishState(conn)
	s.publishBattery(conn)

	tick := time.NewTicker(s.cfg.BatteryPeriod)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			println("Info: power service stopping")
			return

		case <-tick.C:
			s.publishBattery(conn)

		case msg := <-ctrlSub.Channel():
			if len(msg.Topic) != 3 {
				s.reply(conn, msg, errcode.InvalidTopic)
				continue
			}
			s.reply(conn, msg, s.control(conn, msg.Topic[2]))
		}
	}
}

// control executes one verb. Stop blocks here for the whole sleep window:
// the call that entered the mode is the call that returns after wake.
func (s *Service) control(conn *bus.Connection, verb string) errcode.Code {
	switch verb {
	case "stop":
		if s.b.Lifecycle() != types.Initialized {
			return errcode.NotInitialized
		}
		s.b.EnterStop()
		s.b.ExitStop()
		conn.Publish(conn.NewMessage(topicWake, types.WakeEvent{
			StopCycles: s.b.StopCycles(),
			TS:         timex.NowMs(),
		}, false))
		s.publishState(conn)
		return errcode.OK

	case "sleep":
		if s.b.Lifecycle() != types.Initialized {
			return errcode.NotInitialized
		}
		s.b.EnterSleep()
		s.publishState(conn)
		return errcode.OK

	case "battery":
		s.publishBattery(conn)
		return errcode.OK

	case "reset":
		s.b.Reset() // does not return on hardware
		return errcode.OK

	default:
		return errcode.UnknownCommand
	}
}

func (s *Service) reply(conn *bus.Connection, msg *bus.Message, code errcode.Code) {
	if msg.ReplyTo == nil {
		return
	}
	conn.Publish(conn.NewMessage(msg.ReplyTo, code, false))
}

func (s *Service) publishState(conn *bus.Connection) {
	conn.Publish(conn.NewMessage(topicState, types.PowerState{
		Lifecycle:  s.b.Lifecycle().String(),
		Mode:       s.b.Mode().String(),
		Source:     s.b.Source().String(),
		Calibrated: s.b.Calibrated(),
		StopCycles: s.b.StopCycles(),
		TS:         timex.NowMs(),
	}, true))
}

func (s *Service) publishBattery(conn *bus.Connection) {
	conn.Publish(conn.NewMessage(topicBattery, types.BatteryState{
		MilliVolts: s.b.MeasureBatteryVoltage(),
		Level:      s.b.BatteryLevel(),
		TS:         timex.NowMs(),
	}, true))
}
