// SPDX-License-Identifier: EPL-2.0

// Package fft implements the radix-2 transform engine used by the codec.
//
// Transforms run over power-of-two lengths only. The forward pass is an
// iterative Cooley-Tukey network: each stage halves the block size and
// doubles the block count, combining pairs (x, y) half a block apart as
//
//	x' = x + y
//	y' = (x - y) * W^(k * 2^stage)
//
// which leaves the result in bit-reversed order; a final pass moves index i
// to reverse(i). The inverse runs the same network with conjugated twiddles
// and scales by 1/N afterwards.
//
// A Plan caches the twiddle table for one length and is shared by every
// caller that asks for that length:
//
//	p, err := fft.NewPlan(2048)
//	spectrum := make([]complex64, 2048)
//	err = p.Forward(spectrum, window)
//
// Lengths that are not powers of two are rejected with ErrNotPowerOfTwo
// before any buffer is touched.
package fft
