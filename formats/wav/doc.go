// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes RIFF/WAVE files holding 16-bit PCM.
//
// ParseRIFF turns a file into a tree of tagged chunks. RIFF and LIST nodes
// keep their children in file order, odd-sized chunks skip their pad byte
// and LIST nesting is bounded by MaxDepth. ReadPCM walks that tree for the
// fmt and data chunks:
//
//	f, _ := os.Open("input.wav")
//	pcm, err := wav.ReadPCM(f)
//	if errors.Is(err, wav.ErrOnlyPCM16bitSupported) {
//	    // 8-bit, 24-bit and float files are rejected
//	}
//
// Decoder plugs ReadPCM into an audio.Registry. The sources it returns also
// implement audio.PCMSource so the samples reach the encoder unchanged.
//
// WritePCM writes any channel count through github.com/go-audio/wav and
// needs an io.WriteSeeker to patch the chunk sizes.
package wav
