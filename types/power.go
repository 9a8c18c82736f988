package types

// ---- Power source ----

// PowerSource classifies how the node is currently supplied.
type PowerSource uint8

const (
	BatteryPower PowerSource = iota
	ExternalPower
)

func (p PowerSource) String() string {
	if p == BatteryPower {
		return "battery"
	}
	return "external"
}

// ---- Power mode ----

// PowerMode is the node's run/sleep state as driven by the sequencer.
type PowerMode uint8

const (
	ModeRun   PowerMode = iota
	ModeSleep           // core halted, regulator and peripheral clocks on
	ModeStop            // core and most peripherals off, RAM retained
)

func (m PowerMode) String() string {
	switch m {
	case ModeSleep:
		return "sleep"
	case ModeStop:
		return "stop"
	default:
		return "run"
	}
}

// ---- Lifecycle ----

// Lifecycle is reset only by power loss or hard reset; it survives stop mode.
type Lifecycle uint8

const (
	Uninitialized Lifecycle = iota
	Initialized
)

func (l Lifecycle) String() string {
	if l == Initialized {
		return "initialized"
	}
	return "uninitialized"
}

// ---- Retained bus payloads ----

// PowerState is published retained on power/state after every transition.
type PowerState struct {
	Lifecycle  string `json:"lifecycle"`
	Mode       string `json:"mode"`
	Source     string `json:"source"`
	Calibrated bool   `json:"calibrated"`
	StopCycles uint32 `json:"stop_cycles"`
	TS         int64  `json:"ts_ms"`
}

// BatteryState is published retained on power/battery.
type BatteryState struct {
	MilliVolts uint16 `json:"mV"`
	Level      uint8  `json:"level"` // 0 external, 1..254 scale, 255 shutdown
	TS         int64  `json:"ts_ms"`
}

// WakeEvent is published (not retained) on power/event/wake after stop exit.
type WakeEvent struct {
	StopCycles uint32 `json:"stop_cycles"`
	TS         int64  `json:"ts_ms"`
}
