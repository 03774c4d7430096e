// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/xprs/audio"
)

// pcmReader is the part of aiff.Decoder ReadPCM needs.
type pcmReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// ReadPCM drains r into an interleaved 16-bit buffer.
func ReadPCM(r io.Reader) (*audio.PCM, error) {
	// go-audio/aiff seeks over chunks
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading aiff data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	if dec.BitDepth != 16 {
		return nil, fmt.Errorf("%w: %d bits", ErrOnlyPCM16bitSupported, dec.BitDepth)
	}

	return drain(dec)
}

func drain(dec pcmReader) (*audio.PCM, error) {
	format := dec.Format()
	if format == nil || format.SampleRate <= 0 {
		return nil, ErrUnsupportedAiffLayout
	}
	if format.NumChannels <= 0 {
		return nil, audio.ErrNoChannels
	}

	pcm := &audio.PCM{SampleRate: format.SampleRate, Channels: format.NumChannels}
	buf := &goaudio.IntBuffer{
		Format: format,
		Data:   make([]int, 4096*format.NumChannels),
	}

	for {
		n, err := dec.PCMBuffer(buf)
		for _, v := range buf.Data[:n] {
			pcm.Samples = append(pcm.Samples, int16(max(min(v, math.MaxInt16), math.MinInt16)))
		}

		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("reading samples: %w", err)
		}
		if n == 0 || err == io.EOF {
			break
		}
	}

	pcm.Samples = pcm.Samples[:pcm.Frames()*pcm.Channels]

	return pcm, nil
}

// Decoder reads 16-bit AIFF files. Its sources implement audio.PCMSource.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	pcm, err := ReadPCM(r)
	if err != nil {
		return nil, err
	}
	return audio.NewBufferSource(pcm), nil
}
