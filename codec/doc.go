// SPDX-License-Identifier: EPL-2.0

// Package codec runs the encode and decode pipelines.
//
// Encode splits each channel into non-overlapping windows, transforms every
// window, keeps the strongest bins and returns an in-memory container.
// Decode scatters each window's records back into a spectrum, inverts it and
// interleaves the channels again.
//
// Every (channel, window) pair is independent, so both directions run as a
// bounded parallel map. Results are written into fixed positions, which
// keeps the container's record order (window-major, channel-minor) identical
// regardless of the worker count.
//
// Failures come back as *Error values naming the stage (parse, transform,
// selection, serialize, reconstruct) and, when relevant, the channel and
// window; they unwrap to the sentinel errors of the package that failed.
package codec
