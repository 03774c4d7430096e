// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/xprs/utils"
)

// PCM is a fully materialized interleaved 16-bit buffer.
type PCM struct {
	SampleRate int
	Channels   int
	Samples    []int16
}

// Frames returns the number of whole frames held by p.
func (p *PCM) Frames() int {
	if p == nil || p.Channels <= 0 {
		return 0
	}
	return len(p.Samples) / p.Channels
}

// Deinterleave splits p into one track per channel. A trailing partial
// frame is dropped.
func (p *PCM) Deinterleave() ([][]int16, error) {
	if p.Channels <= 0 {
		return nil, ErrNoChannels
	}

	frames := p.Frames()
	tracks := make([][]int16, p.Channels)
	for ch := range tracks {
		tracks[ch] = make([]int16, frames)
	}

	for f := range frames {
		base := f * p.Channels
		for ch := range p.Channels {
			tracks[ch][f] = p.Samples[base+ch]
		}
	}

	return tracks, nil
}

// Interleave merges equal-length tracks sample by sample, channel-minor.
func Interleave(tracks [][]int16) ([]int16, error) {
	if len(tracks) == 0 {
		return nil, ErrNoChannels
	}

	size := len(tracks[0])
	for ch, t := range tracks {
		if len(t) != size {
			return nil, fmt.Errorf("%w: channel %d has %d samples, want %d", ErrRaggedTracks, ch, len(t), size)
		}
	}

	out := make([]int16, 0, size*len(tracks))
	for i := range size {
		for _, t := range tracks {
			out = append(out, t[i])
		}
	}

	return out, nil
}

// ReadPCM drains src into a PCM buffer. Float sources are converted with
// utils.Float32ToInt16; PCMSource implementations are taken as is.
func ReadPCM(src Source) (*PCM, error) {
	if ps, ok := src.(PCMSource); ok {
		return ps.PCM(), nil
	}

	if src.Channels() <= 0 {
		return nil, ErrNoChannels
	}

	size := src.BufSize()
	if size <= 0 {
		size = 4096
	}
	// keep reads frame aligned
	size -= size % src.Channels()
	if size == 0 {
		size = src.Channels()
	}

	pcm := &PCM{SampleRate: src.SampleRate(), Channels: src.Channels()}
	buf := make([]float32, size)

	for {
		n, err := src.ReadSamples(buf)
		for i := range n {
			pcm.Samples = append(pcm.Samples, utils.Float32ToInt16(buf[i]))
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading samples: %w", err)
		}
		if n == 0 {
			break
		}
	}

	pcm.Samples = pcm.Samples[:pcm.Frames()*pcm.Channels]

	return pcm, nil
}

// BufferSource serves a materialized PCM buffer as a Source. It also
// implements PCMSource, so ReadPCM hands the buffer back untouched.
type BufferSource struct {
	pcm *PCM
	pos int
}

func NewBufferSource(pcm *PCM) *BufferSource {
	return &BufferSource{pcm: pcm}
}

func (s *BufferSource) SampleRate() int { return s.pcm.SampleRate }
func (s *BufferSource) Channels() int   { return s.pcm.Channels }
func (s *BufferSource) BufSize() int    { return 4096 }
func (s *BufferSource) Close() error    { return nil }
func (s *BufferSource) PCM() *PCM       { return s.pcm }

func (s *BufferSource) ReadSamples(dst []float32) (int, error) {
	if s.pos >= len(s.pcm.Samples) {
		return 0, io.EOF
	}

	n := min(len(dst), len(s.pcm.Samples)-s.pos)
	for i := range n {
		dst[i] = utils.Int16ToFloat32(s.pcm.Samples[s.pos+i])
	}
	s.pos += n

	return n, nil
}
