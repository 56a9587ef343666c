package core

// utoa converts an unsigned integer to a string without using fmt package
// This is a lightweight alternative for embedded systems
func utoa(n uint32) string {
	if n == 0 {
		return "0"
	}

	// Count digits
	temp := n
	digits := 0
	for temp > 0 {
		digits++
		temp /= 10
	}

	// Build string from right to left
	buf := make([]byte, digits)
	pos := digits - 1

	for n > 0 {
		buf[pos] = byte('0' + n%10)
		n /= 10
		pos--
	}

	return string(buf)
}

const hexDigits = "0123456789abcdef"

// hex8 formats a byte as 0x-prefixed hex
func hex8(v uint8) string {
	return string([]byte{'0', 'x', hexDigits[v>>4], hexDigits[v&0x0F]})
}

// hex16 formats a 16-bit value as 0x-prefixed hex
func hex16(v uint16) string {
	return string([]byte{'0', 'x',
		hexDigits[v>>12], hexDigits[(v>>8)&0x0F],
		hexDigits[(v>>4)&0x0F], hexDigits[v&0x0F]})
}
