// SPDX-License-Identifier: EPL-2.0

package quant

import "math"

// BFloat16 is the upper half of an IEEE-754 binary32: sign, 8 exponent bits
// and 7 mantissa bits. It keeps the float32 range, which the raw spectra of
// 16-bit PCM need.
type BFloat16 uint16

// BFloat16FromFloat32 rounds f to the nearest bfloat16, ties to even.
func BFloat16FromFloat32(f float32) BFloat16 {
	b := math.Float32bits(f)

	if b&0x7fffffff > 0x7f800000 {
		// NaN: keep sign and force a quiet mantissa bit so truncation
		// cannot turn it into Inf.
		return BFloat16(b>>16 | 0x0040)
	}

	lsb := (b >> 16) & 1
	b += 0x7fff + lsb

	return BFloat16(b >> 16)
}

// Float32 widens h exactly.
func (h BFloat16) Float32() float32 {
	return math.Float32frombits(uint32(h) << 16)
}
