// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ik5/xprs/audio"
	"github.com/ik5/xprs/container"
	"github.com/ik5/xprs/fft"
	"github.com/ik5/xprs/quant"
	"github.com/ik5/xprs/spectral"
)

// check tags option failures with the stage that would have rejected them.
func (o EncodeOptions) check() error {
	err := o.validate()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fft.ErrNotPowerOfTwo):
		return stageErr(StageTransform, err)
	case errors.Is(err, quant.ErrUnknownStorage):
		return stageErr(StageSerialize, err)
	default:
		return stageErr(StageSelection, err)
	}
}

// Encode analyzes pcm window by window and returns the sparse container.
// Samples after the last whole window are dropped. Coefficients are already
// rounded to opts.Storage, so the result decodes the same before and after
// a trip through container.Write. Windows are processed
// concurrently; each result lands in a fixed slot, so the output does not
// depend on scheduling.
func Encode(ctx context.Context, pcm *audio.PCM, opts EncodeOptions) (*container.Container, error) {
	if err := opts.check(); err != nil {
		return nil, err
	}
	if pcm == nil || len(pcm.Samples) == 0 {
		return nil, stageErr(StageParse, ErrEmptyInput)
	}
	if pcm.SampleRate <= 0 {
		return nil, stageErr(StageParse, fmt.Errorf("%w: sample rate %d", ErrInvalidOptions, pcm.SampleRate))
	}

	log := logger(opts.Logger)

	tracks, err := pcm.Deinterleave()
	if err != nil {
		return nil, stageErr(StageParse, err)
	}

	plan, err := fft.NewPlan(opts.WindowSize)
	if err != nil {
		return nil, stageErr(StageTransform, err)
	}

	sel := spectral.Selector{
		OutSize:   opts.OutSize,
		FloorHz:   opts.FloorHz,
		CeilingHz: opts.CeilingHz,
	}
	lo, hi, err := sel.Range(pcm.SampleRate, opts.WindowSize)
	if err != nil {
		return nil, stageErr(StageSelection, err)
	}

	n := opts.WindowSize
	windows := len(tracks[0]) / n
	if windows == 0 {
		log.Warn("input shorter than one window",
			zap.Int("frames", len(tracks[0])),
			zap.Int("window_size", n))
	}

	log.Debug("encode started",
		zap.Int("channels", pcm.Channels),
		zap.Int("sample_rate", pcm.SampleRate),
		zap.Int("windows", windows),
		zap.Int("window_size", n),
		zap.Int("out_size", opts.OutSize),
		zap.Int("bin_lo", lo),
		zap.Int("bin_hi", hi),
		zap.Stringer("storage", opts.Storage))

	out := make([][]spectral.Component, pcm.Channels)
	for ch := range out {
		out[ch] = make([]spectral.Component, windows*opts.OutSize)
	}

	if opts.Progress != nil {
		opts.Progress.Begin(windows * pcm.Channels)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers(opts.Workers))

	for ch := range pcm.Channels {
		for w := range windows {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return &Error{Stage: StageTransform, Channel: ch, Window: w, Err: err}
				}

				spectrum := make([]complex64, n)
				if err := plan.Forward(spectrum, tracks[ch][w*n:(w+1)*n]); err != nil {
					return &Error{Stage: StageTransform, Channel: ch, Window: w, Err: err}
				}

				comps, err := sel.Select(spectrum, pcm.SampleRate)
				if err != nil {
					return &Error{Stage: StageSelection, Channel: ch, Window: w, Err: err}
				}
				dst := out[ch][w*opts.OutSize:]
				for i, c := range comps {
					c.Coef = opts.Storage.Quantize(c.Coef)
					dst[i] = c
				}

				if opts.Progress != nil {
					opts.Progress.Step()
				}
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	c := &container.Container{
		Header: container.Header{
			WindowSize: n,
			Records:    windows * opts.OutSize,
			OutSize:    opts.OutSize,
			SampleRate: pcm.SampleRate,
			Channels:   pcm.Channels,
			Storage:    opts.Storage,
		},
		Tracks: out,
	}
	if err := c.Validate(); err != nil {
		return nil, stageErr(StageSerialize, err)
	}

	log.Debug("encode finished", zap.Int("records", c.Records))

	return c, nil
}
