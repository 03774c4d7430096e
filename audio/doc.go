// SPDX-License-Identifier: EPL-2.0

// Package audio provides the sample containers and decoder plumbing shared by
// the codec and its format adapters.
//
// # Source Interface
//
// Format decoders produce a Source, a pull-based stream of interleaved
// float32 samples in [-1, 1]:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Sources that already hold exact 16-bit PCM (WAV) also implement PCMSource,
// which ReadPCM uses to skip the float round trip.
//
// # PCM Buffers
//
// The codec works on whole materialized buffers. PCM holds interleaved int16
// samples together with the sample rate and channel count:
//
//	pcm, err := audio.ReadPCM(src)
//	tracks, err := pcm.Deinterleave() // one []int16 per channel
//	samples, err := audio.Interleave(tracks)
//
// # Format Registry
//
// The registry maps file extensions to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, err := registry.ForPath("song.wav")
//
// Lookups are case-insensitive. An unregistered extension yields a
// *FormatError that matches ErrUnknownFormat with errors.Is.
package audio
