package types

// BoardConfig is the static wiring/tuning for one board variant.
// Platform packages supply the defaults; nothing here is mutated at runtime.
type BoardConfig struct {
	// Console UART
	UARTBaud     uint32 `json:"uart_baud"`
	ConsoleFIFO  int    `json:"console_fifo"` // bytes per direction, power of two
	ConsoleEcho  bool   `json:"console_echo"`
	DebuggerKept bool   `json:"debugger_kept"` // keep debug clocks in sleep/stop

	// Clock tree
	PLLMul    uint8  `json:"pll_mul"`
	PLLDiv    uint8  `json:"pll_div"`
	SysTickHz uint32 `json:"systick_hz"`

	// Pin numbers (platform numbering scheme)
	LEDs                []int `json:"leds"`
	DebugPins           []int `json:"-"`
	OscHSEIn, OscHSEOut int   `json:"-"`
	OscLSEIn, OscLSEOut int   `json:"-"`
	USBDM, USBDP        int   `json:"-"`
}

// DefaultBoardConfig matches the production radio node wiring.
func DefaultBoardConfig() BoardConfig {
	return BoardConfig{
		UARTBaud:    115200,
		ConsoleFIFO: 1024,
		ConsoleEcho: true,
		PLLMul:      6,
		PLLDiv:      3,
		SysTickHz:   1000,
	}
}
