// SPDX-License-Identifier: EPL-2.0

// Package container reads and writes the XPRS file format.
//
// Layout, little-endian throughout:
//
//	offset size field
//	0      4    "XPRS"
//	4      4    window size (int32)
//	8      4    records per channel (int32)
//	12     4    records per window (int32)
//	16     4    sample rate (int32)
//	20     4    channel count (int32)
//	24     2    storage code (1 narrow, 2 wide)
//	26     4    "DATA"
//	30     ...  records
//
// Records are interleaved: for each record position, one record per channel
// in channel order. Each record is a u16 frequency index followed by the
// real and imaginary parts at the storage width (see package quant).
//
// A reader never guesses: a bad tag, an unknown storage code, a short file
// or an index outside the window is an error and no container is returned.
package container
