//go:build stm32l1

// power.go
package stm32l1

import "device/arm"

// PowerControl drives the PWR block and the Cortex-M sleep controls. It
// satisfies mcu.Power.
type PowerControl struct{}

func NewPowerControl() *PowerControl {
	enablePWRClock()
	return &PowerControl{}
}

func (p *PowerControl) DisablePVD() {
	pwr.CR.ClearBits(pwrCR_PVDE)
}

func (p *PowerControl) ClearWakeFlag() {
	pwr.CR.SetBits(pwrCR_CWUF)
}

func (p *PowerControl) EnableUltraLowPower() {
	pwr.CR.SetBits(pwrCR_ULP)
}

func (p *PowerControl) EnableFastWakeUp() {
	pwr.CR.SetBits(pwrCR_FWU)
}

// EnterStop halts the core until an EXTI or RTC interrupt. Execution
// resumes at the return of the WFI with the system clock back on MSI.
func (p *PowerControl) EnterStop(lowPowerRegulator bool) {
	if lowPowerRegulator {
		pwr.CR.SetBits(pwrCR_LPSDSR)
	} else {
		pwr.CR.ClearBits(pwrCR_LPSDSR)
	}
	pwr.CR.ClearBits(pwrCR_PDDS)
	scbSCR.SetBits(scbSCR_SLEEPDEEP)
	arm.Asm("wfi")
	scbSCR.ClearBits(scbSCR_SLEEPDEEP)
}

func (p *PowerControl) EnterSleep() {
	scbSCR.ClearBits(scbSCR_SLEEPDEEP)
	arm.Asm("wfi")
}

// EnterStandby powers the core domain off. The only way back is a reset.
func (p *PowerControl) EnterStandby() {
	pwr.CR.SetBits(pwrCR_CWUF | pwrCR_PDDS)
	scbSCR.SetBits(scbSCR_SLEEPDEEP)
	for {
		arm.Asm("wfi")
	}
}

func (p *PowerControl) SystemReset() {
	scbAIRCR.Set(scbAIRCR_VECTKEY | scbAIRCR_SYSRESETREQ)
	for {
		arm.Asm("wfi")
	}
}

// IRQControl masks interrupts through PRIMASK. It satisfies mcu.IRQ.
type IRQControl struct{}

func (IRQControl) Disable() uintptr {
	return arm.DisableInterrupts()
}

func (IRQControl) Restore(state uintptr) {
	arm.EnableInterrupts(state)
}
