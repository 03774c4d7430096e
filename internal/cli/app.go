// SPDX-License-Identifier: EPL-2.0

// Package cli implements the xprs command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ik5/xprs"
	"github.com/ik5/xprs/audio"
	"github.com/ik5/xprs/internal/config"
	"github.com/ik5/xprs/internal/logging"
	"github.com/ik5/xprs/playback"
)

// ErrNoDevice is returned by decode without --out when no playback
// backend was configured with WithDevice.
var ErrNoDevice = errors.New("no playback device, use --out to write a WAV file")

// App holds the state shared by every subcommand of one invocation.
type App struct {
	stdout    io.Writer
	stderr    io.Writer
	registry  *audio.Registry
	newDevice func() playback.Device

	v          *viper.Viper
	configFile string
	cfg        *config.Config
	log        *zap.Logger
}

// Option configures an App.
type Option func(*App)

// WithOutput redirects normal and diagnostic output.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(a *App) {
		a.stdout = stdout
		a.stderr = stderr
	}
}

// WithRegistry replaces the input decoders.
func WithRegistry(reg *audio.Registry) Option {
	return func(a *App) { a.registry = reg }
}

// WithDevice replaces the playback backend used by decode.
func WithDevice(newDevice func() playback.Device) Option {
	return func(a *App) { a.newDevice = newDevice }
}

func New(opts ...Option) *App {
	a := &App{
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		registry:  xprs.NewRegistry(),
		v:         config.New(),
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Command builds the command tree.
func (a *App) Command() *cobra.Command {
	root := &cobra.Command{
		Use:   "xprs",
		Short: "Sparse-spectrum lossy audio codec",
		Long: `xprs keeps only the strongest frequency bins of every analysis window.

Configuration is read from defaults, then --config (YAML), then XPRS_*
environment variables (e.g. XPRS_ENCODE_RATIO), then flags.`,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (YAML)")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	a.bind("log_level", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(a.encodeCommand(), a.decodeCommand(), a.infoCommand())

	return root
}

// Run executes args and returns the process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	root := a.Command()
	root.SetArgs(args)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	err := root.ExecuteContext(ctx)
	_ = a.log.Sync()

	if err != nil {
		fmt.Fprintf(a.stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func (a *App) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = logging.New(
		logging.WithLevel(cfg.LogLevel),
		logging.WithJSON(cfg.LogJSON),
		logging.WithOutput(a.stderr),
		logging.WithFields(zap.String("cmd", cmd.Name())),
	)

	a.log.Debug("configuration loaded",
		zap.String("file", a.v.ConfigFileUsed()),
		zap.Any("encode", cfg.Encode),
		zap.Any("decode", cfg.Decode))

	return nil
}
