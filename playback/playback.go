// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"context"
	"errors"
	"fmt"

	"github.com/ik5/xprs/audio"
)

// DefaultPeriodFrames is the number of frames written per device call.
const DefaultPeriodFrames = 512

// Device is an interleaved 16-bit output.
type Device interface {
	Open(sampleRate, channels int) error
	// Write blocks until the device accepted the whole period.
	Write(period []int16) error
	// Recover prepares the device for another Write after err.
	Recover(err error) error
	// Drain blocks until everything written has been played.
	Drain() error
	Close() error
}

// Play writes pcm to dev in periods of periodFrames frames, zero-padding
// the last one. An underrun gets one Recover and one retry of the same
// period; any other failure ends playback. dev is closed on return.
func Play(ctx context.Context, dev Device, pcm *audio.PCM, periodFrames int) (err error) {
	if pcm.Channels <= 0 {
		return audio.ErrNoChannels
	}
	if periodFrames <= 0 {
		periodFrames = DefaultPeriodFrames
	}

	if err := dev.Open(pcm.SampleRate, pcm.Channels); err != nil {
		return fmt.Errorf("%w: open: %w", ErrDevice, err)
	}
	defer func() {
		if cerr := dev.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: close: %w", ErrDevice, cerr)
		}
	}()

	size := periodFrames * pcm.Channels
	period := make([]int16, size)

	for i, start := 0, 0; start < len(pcm.Samples); i, start = i+1, start+size {
		if err := ctx.Err(); err != nil {
			return err
		}

		n := copy(period, pcm.Samples[start:])
		clear(period[n:])

		if err := writePeriod(dev, period); err != nil {
			return fmt.Errorf("period %d: %w", i, err)
		}
	}

	if err := dev.Drain(); err != nil {
		return fmt.Errorf("%w: drain: %w", ErrDevice, err)
	}

	return nil
}

func writePeriod(dev Device, period []int16) error {
	err := dev.Write(period)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrUnderrun) {
		return fmt.Errorf("%w: %w", ErrDevice, err)
	}

	if rerr := dev.Recover(err); rerr != nil {
		return fmt.Errorf("%w: recover from %w: %w", ErrDevice, err, rerr)
	}
	if err := dev.Write(period); err != nil {
		return fmt.Errorf("%w: after recovery: %w", ErrDevice, err)
	}

	return nil
}
