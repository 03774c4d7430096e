// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ik5/xprs"
	"github.com/ik5/xprs/codec"
	"github.com/ik5/xprs/playback"
)

func (a *App) decodeCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "decode SRC",
		Short: "Decode an XPRS container and play it",
		Long: `Decode reconstructs SRC and plays it on the default output device, or
writes a 16-bit WAV when --out is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDecode(cmd, args[0], out)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&out, "out", "o", "", "write a WAV file instead of playing")
	f.String("mode", codec.Mirror.String(), "reconstruction: mirror or real")
	f.Int("period", playback.DefaultPeriodFrames, "frames per device write")
	f.Int("workers", 0, "parallel windows (0 uses every CPU)")

	a.bind("decode.mode", f.Lookup("mode"))
	a.bind("decode.period", f.Lookup("period"))
	a.bind("decode.workers", f.Lookup("workers"))

	return cmd
}

func (a *App) runDecode(cmd *cobra.Command, src, out string) error {
	opts, err := a.cfg.DecodeOptions()
	if err != nil {
		return err
	}
	opts.Logger = a.log

	cmd.SilenceUsage = true

	pcm, err := xprs.DecodeFile(cmd.Context(), src, opts)
	if err != nil {
		return err
	}

	if out != "" {
		if err := xprs.WriteWAVFile(out, pcm); err != nil {
			return fmt.Errorf("writing %s: %w", out, err)
		}
		a.log.Info("decoded", zap.String("src", src), zap.String("out", out), zap.Int("frames", pcm.Frames()))
		return nil
	}

	if a.newDevice == nil {
		return ErrNoDevice
	}

	a.log.Info("playing",
		zap.String("src", src),
		zap.Int("frames", pcm.Frames()),
		zap.Int("period", a.cfg.Decode.PeriodFrames))

	return playback.Play(cmd.Context(), a.newDevice(), pcm, a.cfg.Decode.PeriodFrames)
}
