// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/xprs/audio"
)

// oggReader is the part of oggvorbis.Reader the source needs.
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec oggReader
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return s.dec.Channels() }
func (s *source) BufSize() int    { return 4096 * s.dec.Channels() }
func (s *source) Close() error    { return nil }

// ReadSamples passes whole frames through; the decoder already yields
// interleaved floats in [-1, 1].
func (s *source) ReadSamples(dst []float32) (int, error) {
	frames := len(dst) / s.dec.Channels()
	if frames == 0 {
		return 0, nil
	}

	return s.dec.Read(dst[:frames*s.dec.Channels()])
}

// Decoder reads Ogg Vorbis streams.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotVorbisFile, err)
	}
	if dec.Channels() <= 0 {
		return nil, audio.ErrNoChannels
	}

	return &source{dec: dec}, nil
}
