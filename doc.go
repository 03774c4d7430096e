// SPDX-License-Identifier: EPL-2.0

// Package xprs is a lossy audio codec that keeps only the strongest
// frequency bins of each analysis window.
//
// Encoding splits every channel into fixed-size windows, transforms each
// window with a radix-2 FFT, keeps the out_size largest bins below the
// audible ceiling and stores them as (index, value) records in an "XPRS"
// container. Decoding scatters the records back into a spectrum and runs
// the inverse transform.
//
// # Quick Start
//
// The file helpers in this package cover the common path:
//
//	reg := xprs.NewRegistry()
//
//	opts := codec.DefaultEncodeOptions()
//	hdr, err := xprs.EncodeFile(ctx, reg, "in.wav", "out.xprs", opts)
//
//	pcm, err := xprs.DecodeFile(ctx, "out.xprs", codec.DefaultDecodeOptions())
//	err = xprs.WriteWAVFile("roundtrip.wav", pcm)
//
// # Packages
//
//   - fft: the transform engine
//   - spectral: top-K bin selection
//   - quant: narrow (bfloat16) and wide (float32) record storage
//   - container: the XPRS file format
//   - codec: parallel encode and decode pipelines
//   - formats/wav, formats/aiff, formats/mp3, formats/vorbis: inputs
//   - playback: period writer and host output
//
// # Supported Inputs
//
// EncodeFile picks a decoder by file extension: wav, aiff/aif, mp3 and
// ogg. Everything is converted to 16-bit PCM first; WAV and AIFF samples
// are used as is.
//
// # Errors
//
// Pipeline failures are *codec.Error values naming the stage that failed.
// EncodeFile never leaves a partial output: it writes to a temporary file
// next to the destination and renames it on success.
package xprs
