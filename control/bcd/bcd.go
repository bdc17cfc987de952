// Package bcd converts between integers and packed binary-coded decimal, the format real-time
// clock chips use for their time registers.
package bcd

// Encode packs a two-digit decimal number (0-99) into one byte, tens in the high nibble.
func Encode(n int) byte {
	return byte((n/10)<<4 | n%10)
}

// Decode unpacks a BCD byte.  Nibbles above 9 are not rejected; use Valid for that.
func Decode(b byte) int {
	return int(b>>4)*10 + int(b&0x0f)
}

// Valid reports whether both nibbles of b are decimal digits.
func Valid(b byte) bool {
	return b>>4 < 10 && b&0x0f < 10
}
