// SPDX-License-Identifier: EPL-2.0

// Package quant converts spectral coefficients to and from their on-disk
// precision.
//
// Two storage kinds exist:
//
//	Narrow (code 1): index u16 + 2 × bfloat16 = 6 bytes per record
//	Wide   (code 2): index u16 + 2 × float32  = 10 bytes per record
//
// All values are little-endian. Narrowing only affects the coefficient; the
// frequency index is always stored as a full 16-bit value.
package quant
