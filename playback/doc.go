// SPDX-License-Identifier: EPL-2.0

// Package playback feeds decoded PCM to an output device one period at a
// time.
//
// Play owns the write loop: it pads the final period with silence, gives
// each underrun a single recovery attempt and closes the device when done.
// Devices only move samples. The host backend lives in playback/oto.
package playback
