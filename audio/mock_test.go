package audio

import (
	"io"
	"math"
)

// mockSource generates interleaved float samples from a waveform function.
type mockSource struct {
	sampleRate int
	channels   int
	frames     int
	generated  int
	bufSize    int
	waveform   func(frame, channel int) float32
	failAfter  int
}

func newSineSource(sampleRate, channels, frames int, frequency float64) *mockSource {
	return &mockSource{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		bufSize:    64,
		failAfter:  -1,
		waveform: func(frame, channel int) float32 {
			t := float64(frame) / float64(sampleRate)
			return float32(0.5 * math.Sin(2*math.Pi*frequency*t))
		},
	}
}

func (m *mockSource) SampleRate() int { return m.sampleRate }
func (m *mockSource) Channels() int   { return m.channels }
func (m *mockSource) BufSize() int    { return m.bufSize }
func (m *mockSource) Close() error    { return nil }

func (m *mockSource) ReadSamples(dst []float32) (int, error) {
	if m.failAfter >= 0 && m.generated >= m.failAfter {
		return 0, io.ErrUnexpectedEOF
	}
	if m.generated >= m.frames {
		return 0, io.EOF
	}

	want := min(len(dst)/m.channels, m.frames-m.generated)
	for f := range want {
		for ch := range m.channels {
			dst[f*m.channels+ch] = m.waveform(m.generated+f, ch)
		}
	}
	m.generated += want

	if m.generated >= m.frames {
		return want * m.channels, io.EOF
	}
	return want * m.channels, nil
}

// pcmMock is a source that already holds exact PCM.
type pcmMock struct {
	mockSource
	pcm *PCM
}

func (p *pcmMock) PCM() *PCM { return p.pcm }
