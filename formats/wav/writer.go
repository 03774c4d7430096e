// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/xprs/audio"
)

// WritePCM writes pcm as a 16-bit PCM WAV. The writer must be seekable
// so the chunk sizes can be patched once the data is written.
func WritePCM(ws io.WriteSeeker, pcm *audio.PCM) error {
	if pcm.Channels <= 0 {
		return audio.ErrNoChannels
	}

	enc := gowav.NewEncoder(ws, pcm.SampleRate, 16, pcm.Channels, formatPCM)

	data := make([]int, len(pcm.Samples))
	for i, s := range pcm.Samples {
		data[i] = int(s)
	}

	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: pcm.Channels,
			SampleRate:  pcm.SampleRate,
		},
		Data:           data,
		SourceBitDepth: 16,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("writing samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing WAV: %w", err)
	}

	return nil
}
