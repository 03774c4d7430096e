// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/xprs/audio"
)

type mockAiffReader struct {
	format *goaudio.Format
	data   []int
	err    error
}

func (m *mockAiffReader) Format() *goaudio.Format { return m.format }

func (m *mockAiffReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.err != nil {
		return 0, m.err
	}

	n := copy(buf.Data, m.data)
	m.data = m.data[n:]
	return n, nil
}

func writeAIFF(t *testing.T, rate, bitDepth, channels int, data []int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "in.aiff")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	enc := aiff.NewEncoder(f, rate, bitDepth, channels)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: rate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("closing fixture: %v", err)
	}

	return path
}

func TestReadPCM_File(t *testing.T) {
	t.Parallel()

	data := []int{0, 1, -1, 32767, -32768, 1000, -1000, 42}
	path := writeAIFF(t, 22050, 16, 2, data)

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	src, err := Decoder{}.Decode(f)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	pcm, err := audio.ReadPCM(src)
	if err != nil {
		t.Fatalf("ReadPCM() error = %v", err)
	}

	want := []int16{0, 1, -1, 32767, -32768, 1000, -1000, 42}
	if pcm.SampleRate != 22050 || pcm.Channels != 2 {
		t.Errorf("format = %d Hz/%d ch", pcm.SampleRate, pcm.Channels)
	}
	if !slices.Equal(pcm.Samples, want) {
		t.Errorf("Samples = %v, want %v", pcm.Samples, want)
	}
}

func TestReadPCM_NotSeekable(t *testing.T) {
	t.Parallel()

	raw, err := os.ReadFile(writeAIFF(t, 8000, 16, 1, []int{5, -5}))
	if err != nil {
		t.Fatal(err)
	}

	// hide Seek
	r := struct{ io.Reader }{bytes.NewReader(raw)}
	pcm, err := ReadPCM(r)
	if err != nil {
		t.Fatalf("ReadPCM() error = %v", err)
	}
	if !slices.Equal(pcm.Samples, []int16{5, -5}) {
		t.Errorf("Samples = %v", pcm.Samples)
	}
}

func TestReadPCM_Errors(t *testing.T) {
	t.Parallel()

	raw24, err := os.ReadFile(writeAIFF(t, 8000, 24, 1, []int{5, -5}))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		input   []byte
		wantErr error
	}{
		{"empty", nil, ErrNotAiffFile},
		{"garbage", []byte("This is not AIFF data at all"), ErrNotAiffFile},
		{"24-bit", raw24, ErrOnlyPCM16bitSupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ReadPCM(bytes.NewReader(tt.input))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ReadPCM() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDrain(t *testing.T) {
	t.Parallel()

	stereo := &goaudio.Format{NumChannels: 2, SampleRate: 44100}

	tests := []struct {
		name    string
		dec     *mockAiffReader
		want    []int16
		wantErr error
	}{
		{
			name: "partial frame dropped",
			dec:  &mockAiffReader{format: stereo, data: []int{1, 2, 3}},
			want: []int16{1, 2},
		},
		{
			name: "out of range clamped",
			dec:  &mockAiffReader{format: stereo, data: []int{40000, -40000}},
			want: []int16{32767, -32768},
		},
		{
			name:    "missing format",
			dec:     &mockAiffReader{},
			wantErr: ErrUnsupportedAiffLayout,
		},
		{
			name:    "no channels",
			dec:     &mockAiffReader{format: &goaudio.Format{SampleRate: 8000}},
			wantErr: audio.ErrNoChannels,
		},
		{
			name:    "read error",
			dec:     &mockAiffReader{format: stereo, err: io.ErrUnexpectedEOF},
			wantErr: io.ErrUnexpectedEOF,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pcm, err := drain(tt.dec)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("drain() error = %v, want %v", err, tt.wantErr)
			}
			if err == nil && !slices.Equal(pcm.Samples, tt.want) {
				t.Errorf("Samples = %v, want %v", pcm.Samples, tt.want)
			}
		})
	}
}
