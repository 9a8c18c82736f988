// x/conv/conv.go
package conv

// Allocation-free number formatting for console output. No fmt/strconv
// dependency so the shell stays cheap on MCU builds.

// Itoa writes the base-10 representation of n into buf and returns the
// used slice. buf should be length >= 20 for int64.
func Itoa(buf []byte, n int64) []byte {
	if len(buf) == 0 {
		return buf[:0]
	}
	neg := n < 0
	var u uint64
	if neg {
		u = uint64(-n)
	} else {
		u = uint64(n)
	}
	out := Utoa(buf, u)
	if neg {
		i := len(buf) - len(out)
		if i > 0 {
			i--
			buf[i] = '-'
			out = buf[i:]
		}
	}
	return out
}

// Utoa writes the base-10 representation of n into buf and returns the
// used slice. buf should be length >= 20 for uint64.
func Utoa(buf []byte, n uint64) []byte {
	if len(buf) == 0 {
		return buf[:0]
	}
	i := len(buf)
	if n == 0 {
		i--
		buf[i] = '0'
	} else {
		for n > 0 && i > 0 {
			i--
			buf[i] = byte('0' + (n % 10))
			n /= 10
		}
	}
	return buf[i:]
}

// U32Hex writes 8-digit uppercase hex without 0x, zero-padded.
func U32Hex(buf []byte, n uint32) []byte {
	if len(buf) < 8 {
		return buf[:0]
	}
	const hexd = "0123456789ABCDEF"
	i := len(buf)
	for j := 0; j < 8; j++ {
		i--
		buf[i] = hexd[n&0xF]
		n >>= 4
	}
	return buf[i:]
}
