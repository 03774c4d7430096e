// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ik5/xprs"
	"github.com/ik5/xprs/codec"
	"github.com/ik5/xprs/spectral"
)

func (a *App) encodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode SRC DEST",
		Short: "Encode an audio file into an XPRS container",
		Long: `Encode reads SRC (wav, aiff, mp3 or ogg), keeps window_size/ratio bins
per window and writes the container to DEST. DEST is replaced only when
encoding succeeds.`,
		Args: cobra.ExactArgs(2),
		RunE: a.runEncode,
	}

	f := cmd.Flags()
	f.Int("ratio", codec.DefaultRatio, "compression ratio; keeps window-size/ratio bins per window")
	f.Int("storage-bits", 16, "bits per stored float (16 or 32)")
	f.Int("window-size", codec.DefaultWindowSize, "samples per analysis window (power of two)")
	f.Float64("floor-hz", 0, "lowest frequency considered")
	f.Float64("ceiling-hz", spectral.DefaultCeilingHz, "frequency ceiling, exclusive")
	f.Int("workers", 0, "parallel windows (0 uses every CPU)")
	f.Bool("progress", false, "show a progress bar on stderr")

	a.bind("encode.ratio", f.Lookup("ratio"))
	a.bind("encode.storage_bits", f.Lookup("storage-bits"))
	a.bind("encode.window_size", f.Lookup("window-size"))
	a.bind("encode.floor_hz", f.Lookup("floor-hz"))
	a.bind("encode.ceiling_hz", f.Lookup("ceiling-hz"))
	a.bind("encode.workers", f.Lookup("workers"))
	a.bind("encode.progress", f.Lookup("progress"))

	return cmd
}

func (a *App) runEncode(cmd *cobra.Command, args []string) error {
	src, dst := args[0], args[1]

	opts, err := a.cfg.EncodeOptions()
	if err != nil {
		return err
	}
	opts.Logger = a.log

	// arguments are valid; anything below is not a usage problem
	cmd.SilenceUsage = true

	var bar *barProgress
	if a.cfg.Encode.Progress {
		bar = newBarProgress(a.stderr, filepath.Base(src))
		opts.Progress = bar
	}

	start := time.Now()
	h, err := xprs.EncodeFile(cmd.Context(), a.registry, src, dst, opts)
	if bar != nil {
		bar.Wait(err != nil)
	}
	if err != nil {
		return err
	}

	a.log.Info("encoded",
		zap.String("src", src),
		zap.String("dst", dst),
		zap.Int("windows", h.Windows()),
		zap.Int("channels", h.Channels),
		zap.Duration("took", time.Since(start)))

	fmt.Fprintf(a.stdout, "%s: %d windows x %d channels, %d records each (%s)\n",
		dst, h.Windows(), h.Channels, h.OutSize, h.Storage)

	return nil
}
