// board/battery.go
package board

import (
	"nodeboard-go/types"
	"nodeboard-go/x/mathx"
)

// ADC channels and scaling for supply measurement. The internal bandgap
// reference is read against the supply, so the supply voltage falls out of
// the ratio without any external divider.
const (
	adcChannelVREF = 17

	adcMaxValue          = 4095
	adcVrefBandgapMilliV = 1224

	batteryMaxLevelMilliV      = 3000
	batteryMinLevelMilliV      = 2400
	batteryShutdownLevelMilliV = 2300
)

// MeasureBatteryVoltage samples the bandgap channel and returns the supply
// voltage in millivolts, caching it for BatteryVoltage.
func (b *Board) MeasureBatteryVoltage() uint16 {
	raw, err := b.d.ADC.ReadChannel(adcChannelVREF)
	if err != nil || raw == 0 {
		return b.batteryMilliV
	}
	mv := uint32(adcVrefBandgapMilliV) * uint32(adcMaxValue) / uint32(raw)
	b.batteryMilliV = uint16(mathx.Min(mv, 0xFFFF))
	return b.batteryMilliV
}

// BatteryVoltage returns the last measured supply voltage in millivolts.
func (b *Board) BatteryVoltage() uint16 { return b.batteryMilliV }

// BatteryLevel measures and encodes the battery state of charge:
// 0 on external power, 255 at or below the shutdown threshold, otherwise
// 1..254 scaled across the min..max window.
func (b *Board) BatteryLevel() uint8 {
	mv := b.MeasureBatteryVoltage()

	if b.d.Source() == types.ExternalPower {
		return 0
	}
	switch {
	case mv >= batteryMaxLevelMilliV:
		return 254
	case mv > batteryMinLevelMilliV:
		span := uint32(batteryMaxLevelMilliV - batteryMinLevelMilliV)
		l := (253*uint32(mv-batteryMinLevelMilliV))/span + 1
		return uint8(mathx.Clamp(l, 1, 254))
	case mv > batteryShutdownLevelMilliV:
		return 1
	default:
		return 255
	}
}
