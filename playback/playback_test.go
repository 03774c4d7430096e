// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/ik5/xprs/audio"
)

// fakeDevice records periods and fails the writes listed in failures,
// keyed by the 0-based write call.
type fakeDevice struct {
	failures   map[int]error
	recoverErr error

	rate, channels int
	writes         int
	periods        [][]int16
	recovers       int
	drained        bool
	closed         bool
}

func (d *fakeDevice) Open(rate, channels int) error {
	d.rate, d.channels = rate, channels
	return nil
}

func (d *fakeDevice) Write(period []int16) error {
	call := d.writes
	d.writes++
	if err, ok := d.failures[call]; ok {
		return err
	}
	d.periods = append(d.periods, slices.Clone(period))
	return nil
}

func (d *fakeDevice) Recover(error) error {
	d.recovers++
	return d.recoverErr
}

func (d *fakeDevice) Drain() error {
	d.drained = true
	return nil
}

func (d *fakeDevice) Close() error {
	d.closed = true
	return nil
}

func TestPlay_Periods(t *testing.T) {
	t.Parallel()

	pcm := &audio.PCM{SampleRate: 8000, Channels: 2, Samples: []int16{1, -1, 2, -2, 3, -3, 4, -4, 5, -5}}
	dev := &fakeDevice{}

	if err := Play(context.Background(), dev, pcm, 2); err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	want := [][]int16{
		{1, -1, 2, -2},
		{3, -3, 4, -4},
		{5, -5, 0, 0}, // padded
	}
	if len(dev.periods) != len(want) {
		t.Fatalf("%d periods, want %d", len(dev.periods), len(want))
	}
	for i := range want {
		if !slices.Equal(dev.periods[i], want[i]) {
			t.Errorf("period %d = %v, want %v", i, dev.periods[i], want[i])
		}
	}

	if dev.rate != 8000 || dev.channels != 2 {
		t.Errorf("opened at %d Hz/%d ch", dev.rate, dev.channels)
	}
	if !dev.drained || !dev.closed {
		t.Errorf("drained = %v, closed = %v", dev.drained, dev.closed)
	}
}

func TestPlay_DefaultPeriod(t *testing.T) {
	t.Parallel()

	pcm := &audio.PCM{SampleRate: 8000, Channels: 1, Samples: make([]int16, DefaultPeriodFrames+1)}
	dev := &fakeDevice{}

	if err := Play(context.Background(), dev, pcm, 0); err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if len(dev.periods) != 2 || len(dev.periods[0]) != DefaultPeriodFrames {
		t.Errorf("got %d periods", len(dev.periods))
	}
}

func TestPlay_EmptyInput(t *testing.T) {
	t.Parallel()

	dev := &fakeDevice{}
	if err := Play(context.Background(), dev, &audio.PCM{SampleRate: 8000, Channels: 1}, 4); err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if dev.writes != 0 || !dev.drained || !dev.closed {
		t.Errorf("writes = %d, drained = %v, closed = %v", dev.writes, dev.drained, dev.closed)
	}
}

func TestPlay_Recovery(t *testing.T) {
	t.Parallel()

	broken := errors.New("device unplugged")

	tests := []struct {
		name         string
		failures     map[int]error
		recoverErr   error
		wantErr      error
		wantRecovers int
		wantPeriods  int
	}{
		{
			name:         "single underrun recovered",
			failures:     map[int]error{1: ErrUnderrun},
			wantRecovers: 1,
			wantPeriods:  3,
		},
		{
			name:         "underrun on every period recovered",
			failures:     map[int]error{0: ErrUnderrun, 2: ErrUnderrun, 4: ErrUnderrun},
			wantRecovers: 3,
			wantPeriods:  3,
		},
		{
			name:         "second failure on retry is fatal",
			failures:     map[int]error{1: ErrUnderrun, 2: ErrUnderrun},
			wantErr:      ErrDevice,
			wantRecovers: 1,
			wantPeriods:  1,
		},
		{
			name:         "recover fails",
			failures:     map[int]error{0: ErrUnderrun},
			recoverErr:   broken,
			wantErr:      broken,
			wantRecovers: 1,
		},
		{
			name:        "other errors are not recovered",
			failures:    map[int]error{0: broken},
			wantErr:     ErrDevice,
			wantPeriods: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pcm := &audio.PCM{SampleRate: 8000, Channels: 1, Samples: make([]int16, 12)}
			dev := &fakeDevice{failures: tt.failures, recoverErr: tt.recoverErr}

			err := Play(context.Background(), dev, pcm, 4)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Play() error = %v, want %v", err, tt.wantErr)
			}
			if dev.recovers != tt.wantRecovers {
				t.Errorf("recovers = %d, want %d", dev.recovers, tt.wantRecovers)
			}
			if len(dev.periods) != tt.wantPeriods {
				t.Errorf("periods = %d, want %d", len(dev.periods), tt.wantPeriods)
			}
			if !dev.closed {
				t.Error("device not closed")
			}
		})
	}
}

func TestPlay_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dev := &fakeDevice{}
	err := Play(ctx, dev, &audio.PCM{SampleRate: 8000, Channels: 1, Samples: make([]int16, 8)}, 4)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Play() error = %v, want context.Canceled", err)
	}
	if dev.writes != 0 || dev.drained || !dev.closed {
		t.Errorf("writes = %d, drained = %v, closed = %v", dev.writes, dev.drained, dev.closed)
	}
}

func TestPlay_NoChannels(t *testing.T) {
	t.Parallel()

	dev := &fakeDevice{}
	if err := Play(context.Background(), dev, &audio.PCM{SampleRate: 8000}, 4); !errors.Is(err, audio.ErrNoChannels) {
		t.Errorf("Play() error = %v, want %v", err, audio.ErrNoChannels)
	}
}
