// lpm/lpm.go
//
// Package lpm arbitrates which low-power mode the node may enter. Each
// subsystem holds a bit and can veto the deeper modes; EnterLowPower picks
// the deepest mode nobody vetoed. Battery units veto off mode at boot so a
// stop cycle never loses RAM.
package lpm

// ID is a subsystem's veto bit.
type ID uint32

const (
	IDApp ID = 1 << iota
	IDRadio
	IDRTC
	IDConsole
)

// Mode orders the low-power modes shallow to deep.
type Mode uint8

const (
	ModeSleep Mode = iota // core halted, peripherals live
	ModeStop              // RAM retained, peripherals down
	ModeOff               // full shutdown, RAM lost
)

func (m Mode) String() string {
	switch m {
	case ModeStop:
		return "stop"
	case ModeOff:
		return "off"
	default:
		return "sleep"
	}
}

// Hooks are the board entry points for each mode.
type Hooks struct {
	EnterSleep func()
	EnterStop  func()
	EnterOff   func()
}

// Manager tracks per-subsystem vetoes. Zero value permits every mode.
type Manager struct {
	hooks     Hooks
	sleepVeto uint32
	stopVeto  uint32
	offVeto   uint32
}

func New(hooks Hooks) *Manager {
	return &Manager{hooks: hooks}
}

// SetSleepMode enables or disables sleep mode on behalf of id.
func (m *Manager) SetSleepMode(id ID, enable bool) { set(&m.sleepVeto, id, enable) }

// SetStopMode enables or disables stop mode on behalf of id.
func (m *Manager) SetStopMode(id ID, enable bool) { set(&m.stopVeto, id, enable) }

// SetOffMode enables or disables off mode on behalf of id.
func (m *Manager) SetOffMode(id ID, enable bool) { set(&m.offVeto, id, enable) }

func set(veto *uint32, id ID, enable bool) {
	if enable {
		*veto &^= uint32(id)
	} else {
		*veto |= uint32(id)
	}
}

// Next reports the deepest permitted mode.
func (m *Manager) Next() Mode {
	if m.offVeto == 0 {
		return ModeOff
	}
	if m.stopVeto == 0 {
		return ModeStop
	}
	return ModeSleep
}

// EnterLowPower invokes the board hook for the deepest permitted mode.
// When even sleep is vetoed it does nothing and the caller keeps running.
func (m *Manager) EnterLowPower() {
	switch m.Next() {
	case ModeOff:
		if m.hooks.EnterOff != nil {
			m.hooks.EnterOff()
		}
	case ModeStop:
		if m.hooks.EnterStop != nil {
			m.hooks.EnterStop()
		}
	default:
		if m.sleepVeto != 0 {
			return
		}
		if m.hooks.EnterSleep != nil {
			m.hooks.EnterSleep()
		}
	}
}
