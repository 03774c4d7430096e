// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 files as an encoder input using
// github.com/hajimehoshi/go-mp3.
//
// The decoder always yields two channels; mono files come out duplicated.
// Samples are exact 16-bit values, so audio.ReadPCM recovers them without
// loss.
package mp3
