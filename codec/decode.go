// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ik5/xprs/audio"
	"github.com/ik5/xprs/container"
	"github.com/ik5/xprs/fft"
	"github.com/ik5/xprs/spectral"
	"github.com/ik5/xprs/utils"
)

// Decode rebuilds interleaved PCM from c, one window of OutSize records
// at a time.
func Decode(ctx context.Context, c *container.Container, opts DecodeOptions) (*audio.PCM, error) {
	if c == nil {
		return nil, stageErr(StageParse, ErrEmptyInput)
	}
	if err := c.Validate(); err != nil {
		return nil, stageErr(StageParse, err)
	}
	if len(c.Tracks) != c.Channels {
		return nil, stageErr(StageParse, fmt.Errorf("%w: %d tracks for %d channels", container.ErrTrackLength, len(c.Tracks), c.Channels))
	}
	for ch, t := range c.Tracks {
		if len(t) != c.Records {
			return nil, stageErr(StageParse, fmt.Errorf("%w: channel %d has %d records, want %d", container.ErrTrackLength, ch, len(t), c.Records))
		}
	}
	if opts.Mode != Mirror && opts.Mode != RealPart {
		return nil, stageErr(StageReconstruct, fmt.Errorf("%w: %d", ErrUnknownMode, int(opts.Mode)))
	}

	log := logger(opts.Logger)

	plan, err := fft.NewPlan(c.WindowSize)
	if err != nil {
		return nil, stageErr(StageTransform, err)
	}

	n := c.WindowSize
	windows := c.Windows()

	log.Debug("decode started",
		zap.Int("channels", c.Channels),
		zap.Int("sample_rate", c.SampleRate),
		zap.Int("windows", windows),
		zap.Int("window_size", n),
		zap.Stringer("mode", opts.Mode))

	tracks := make([][]int16, c.Channels)
	for ch := range tracks {
		tracks[ch] = make([]int16, windows*n)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers(opts.Workers))

	for ch := range c.Channels {
		for w := range windows {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return &Error{Stage: StageReconstruct, Channel: ch, Window: w, Err: err}
				}

				dst := tracks[ch][w*n : (w+1)*n]
				if err := reconstruct(plan, c.Window(ch, w), opts.Mode, dst); err != nil {
					return &Error{Stage: StageReconstruct, Channel: ch, Window: w, Err: err}
				}
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	samples, err := audio.Interleave(tracks)
	if err != nil {
		return nil, stageErr(StageReconstruct, err)
	}

	log.Debug("decode finished", zap.Int("samples", len(samples)))

	return &audio.PCM{
		SampleRate: c.SampleRate,
		Channels:   c.Channels,
		Samples:    samples,
	}, nil
}

// reconstruct scatters comps into a zero spectrum and inverts it into dst.
// Zero-valued placeholders are skipped so they cannot clobber a retained
// DC bin.
func reconstruct(plan *fft.Plan, comps []spectral.Component, mode Reconstruction, dst []int16) error {
	n := plan.Len()
	spectrum := make([]complex64, n)

	for _, comp := range comps {
		if comp.Coef == 0 {
			continue
		}

		k := int(comp.Index)
		if k >= n {
			return fmt.Errorf("%w: index %d", container.ErrIndexOutOfRange, k)
		}

		spectrum[k] = comp.Coef
		if mode == Mirror && k != 0 && 2*k != n {
			spectrum[n-k] = complex(real(comp.Coef), -imag(comp.Coef))
		}
	}

	samples := make([]float32, n)
	if err := plan.Inverse(samples, spectrum); err != nil {
		return err
	}

	for i, s := range samples {
		dst[i] = utils.SaturateInt16(s)
	}

	return nil
}
