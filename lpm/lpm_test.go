// lpm/lpm_test.go
package lpm

import "testing"

func newRecorder() (*Manager, *[3]int) {
	var counts [3]int
	m := New(Hooks{
		EnterSleep: func() { counts[0]++ },
		EnterStop:  func() { counts[1]++ },
		EnterOff:   func() { counts[2]++ },
	})
	return m, &counts
}

func TestDefaultIsOff(t *testing.T) {
	m, counts := newRecorder()
	m.EnterLowPower()
	if *counts != [3]int{0, 0, 1} {
		t.Fatalf("counts = %v", *counts)
	}
}

func TestOffVetoFallsBackToStop(t *testing.T) {
	m, counts := newRecorder()
	m.SetOffMode(IDApp, false)
	if m.Next() != ModeStop {
		t.Fatalf("next = %v", m.Next())
	}
	m.EnterLowPower()
	if *counts != [3]int{0, 1, 0} {
		t.Fatalf("counts = %v", *counts)
	}
}

func TestStopVetoFallsBackToSleep(t *testing.T) {
	m, counts := newRecorder()
	m.SetOffMode(IDApp, false)
	m.SetStopMode(IDRadio, false)
	m.EnterLowPower()
	if *counts != [3]int{1, 0, 0} {
		t.Fatalf("counts = %v", *counts)
	}
}

func TestSleepVetoStaysRunning(t *testing.T) {
	m, counts := newRecorder()
	m.SetOffMode(IDApp, false)
	m.SetStopMode(IDApp, false)
	m.SetSleepMode(IDApp, false)
	m.EnterLowPower()
	if *counts != [3]int{0, 0, 0} {
		t.Fatalf("counts = %v", *counts)
	}
}

func TestReEnableRestoresDepth(t *testing.T) {
	m, _ := newRecorder()
	m.SetOffMode(IDApp, false)
	m.SetOffMode(IDRadio, false)
	m.SetOffMode(IDApp, true)
	if m.Next() != ModeStop {
		t.Fatalf("one veto left, next = %v", m.Next())
	}
	m.SetOffMode(IDRadio, true)
	if m.Next() != ModeOff {
		t.Fatalf("all vetoes cleared, next = %v", m.Next())
	}
}
