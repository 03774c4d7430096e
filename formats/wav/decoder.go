// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/xprs/audio"
)

const (
	formatPCM        = 1
	formatExtensible = 0xfffe
)

// Format is the subset of the fmt chunk the codec needs.
type Format struct {
	AudioFormat   uint16
	Channels      int
	SampleRate    int
	BitsPerSample int
}

func parseFormat(data []byte) (Format, error) {
	if len(data) < 16 {
		return Format{}, fmt.Errorf("%w: %d bytes", ErrMalformedFmtChunk, len(data))
	}

	f := Format{
		AudioFormat:   binary.LittleEndian.Uint16(data[0:2]),
		Channels:      int(binary.LittleEndian.Uint16(data[2:4])),
		SampleRate:    int(binary.LittleEndian.Uint32(data[4:8])),
		BitsPerSample: int(binary.LittleEndian.Uint16(data[14:16])),
	}

	// the extensible header keeps the real format in the sub-format GUID
	if f.AudioFormat == formatExtensible && len(data) >= 26 {
		f.AudioFormat = binary.LittleEndian.Uint16(data[24:26])
	}

	return f, nil
}

// ReadPCM parses a RIFF/WAVE stream holding 16-bit PCM.
func ReadPCM(r io.Reader) (*audio.PCM, error) {
	root, err := ParseRIFF(r)
	if err != nil {
		return nil, err
	}
	if root.Form != "WAVE" {
		return nil, fmt.Errorf("%w: form %q", ErrNotWavFile, root.Form)
	}

	fmtChunk := root.Child("fmt ")
	if fmtChunk == nil {
		return nil, ErrMissingFmtChunk
	}
	f, err := parseFormat(fmtChunk.Data)
	if err != nil {
		return nil, err
	}
	if f.AudioFormat != formatPCM || f.BitsPerSample != 16 {
		return nil, fmt.Errorf("%w: format %d, %d bits", ErrOnlyPCM16bitSupported, f.AudioFormat, f.BitsPerSample)
	}
	if f.Channels == 0 {
		return nil, audio.ErrNoChannels
	}

	dataChunk := root.Child("data")
	if dataChunk == nil {
		return nil, ErrMissingDataChunk
	}

	frames := len(dataChunk.Data) / (2 * f.Channels)
	pcm := &audio.PCM{
		SampleRate: f.SampleRate,
		Channels:   f.Channels,
		Samples:    make([]int16, frames*f.Channels),
	}
	for i := range pcm.Samples {
		pcm.Samples[i] = int16(binary.LittleEndian.Uint16(dataChunk.Data[2*i:]))
	}

	return pcm, nil
}

// Decoder reads whole WAV files. Its sources implement audio.PCMSource.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	pcm, err := ReadPCM(r)
	if err != nil {
		return nil, err
	}
	return audio.NewBufferSource(pcm), nil
}
