//go:build stm32l1

// id.go
package stm32l1

import (
	"runtime/volatile"
	"unsafe"
)

// UniqueWords reads the three factory-programmed device ID words. The
// middle word sits at a non-contiguous offset on this family.
func UniqueWords() [3]uint32 {
	return [3]uint32{
		(*volatile.Register32)(unsafe.Pointer(uintptr(0x1FF80050))).Get(),
		(*volatile.Register32)(unsafe.Pointer(uintptr(0x1FF80054))).Get(),
		(*volatile.Register32)(unsafe.Pointer(uintptr(0x1FF80064))).Get(),
	}
}
