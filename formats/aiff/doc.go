// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes 16-bit AIFF files as an encoder input using
// github.com/go-audio/aiff.
//
// The whole file is read up front. Inputs that are not an io.ReadSeeker
// are buffered in memory first since the decoder seeks between chunks.
//
//	src, err := aiff.Decoder{}.Decode(f)
//	if errors.Is(err, aiff.ErrOnlyPCM16bitSupported) {
//	    // 8, 24 and 32-bit files are rejected
//	}
package aiff
