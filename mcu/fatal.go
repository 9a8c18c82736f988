// mcu/fatal.go
package mcu

// FatalHook, when non-nil, replaces the trap loop. Host tests install a
// hook that panics so fatal paths can be asserted without hanging.
var FatalHook func(reason string)

// Fatal reports an unrecoverable hardware fault and traps. There is no
// retry and no degraded mode: the node hangs here until the independent
// watchdog resets it.
func Fatal(reason string) {
	if FatalHook != nil {
		FatalHook(reason)
		return
	}
	println("fatal:", reason)
	for {
	}
}
