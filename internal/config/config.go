// SPDX-License-Identifier: EPL-2.0

// Package config layers defaults, an optional YAML file, XPRS_* variables
// and command line flags into one Config.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/viper"

	"github.com/ik5/xprs/codec"
	"github.com/ik5/xprs/fft"
	"github.com/ik5/xprs/internal/logging"
	"github.com/ik5/xprs/playback"
	"github.com/ik5/xprs/quant"
	"github.com/ik5/xprs/spectral"
)

// EnvPrefix is prepended to every environment key, e.g. XPRS_ENCODE_RATIO.
const EnvPrefix = "XPRS"

var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the application configuration
type Config struct {
	LogLevel string `mapstructure:"log_level"`
	LogJSON  bool   `mapstructure:"log_json"`

	Encode EncodeConfig `mapstructure:"encode"`
	Decode DecodeConfig `mapstructure:"decode"`
}

// EncodeConfig holds the encoder settings.
type EncodeConfig struct {
	Ratio       int     `mapstructure:"ratio"`
	StorageBits int     `mapstructure:"storage_bits"`
	WindowSize  int     `mapstructure:"window_size"`
	FloorHz     float64 `mapstructure:"floor_hz"`
	CeilingHz   float64 `mapstructure:"ceiling_hz"`
	Workers     int     `mapstructure:"workers"`
	Progress    bool    `mapstructure:"progress"`
}

// DecodeConfig holds the decoder and playback settings.
type DecodeConfig struct {
	Mode         string `mapstructure:"mode"`
	PeriodFrames int    `mapstructure:"period"`
	Workers      int    `mapstructure:"workers"`
}

// SetDefaults registers every key with its default value.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("log_json", false)

	v.SetDefault("encode.ratio", codec.DefaultRatio)
	v.SetDefault("encode.storage_bits", 16)
	v.SetDefault("encode.window_size", codec.DefaultWindowSize)
	v.SetDefault("encode.floor_hz", 0.0)
	v.SetDefault("encode.ceiling_hz", spectral.DefaultCeilingHz)
	v.SetDefault("encode.workers", 0)
	v.SetDefault("encode.progress", false)

	v.SetDefault("decode.mode", codec.Mirror.String())
	v.SetDefault("decode.period", playback.DefaultPeriodFrames)
	v.SetDefault("decode.workers", 0)
}

// New returns a viper instance with defaults and environment lookup.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// Load reads file when it is set and decodes v into a validated Config.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects values no command could run with.
func (c *Config) Validate() error {
	var errs []error

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	if _, err := quant.StorageForBits(c.Encode.StorageBits); err != nil {
		errs = append(errs, fmt.Errorf("encode.storage_bits: %w", err))
	}
	if !fft.IsPowerOfTwo(c.Encode.WindowSize) {
		errs = append(errs, fmt.Errorf("encode.window_size %d: %w", c.Encode.WindowSize, fft.ErrNotPowerOfTwo))
	} else if _, err := codec.OutSizeForRatio(c.Encode.WindowSize, c.Encode.Ratio); err != nil {
		errs = append(errs, fmt.Errorf("encode.ratio: %w", err))
	}
	floor, ceiling := c.Encode.FloorHz, c.Encode.CeilingHz
	switch {
	case math.IsNaN(floor) || math.IsInf(floor, 0) || math.IsNaN(ceiling) || math.IsInf(ceiling, 0):
		errs = append(errs, fmt.Errorf("encode band %g-%g Hz is not finite: %w", floor, ceiling, spectral.ErrInvalidRange))
	case floor < 0 || ceiling < 0 || floor > ceiling:
		errs = append(errs, fmt.Errorf("encode band %g-%g Hz is empty: %w", floor, ceiling, spectral.ErrInvalidRange))
	}
	if c.Encode.Workers < 0 {
		errs = append(errs, fmt.Errorf("encode.workers %d is negative", c.Encode.Workers))
	}

	if _, err := codec.ParseReconstruction(c.Decode.Mode); err != nil {
		errs = append(errs, err)
	}
	if c.Decode.PeriodFrames < 0 {
		errs = append(errs, fmt.Errorf("decode.period %d is negative", c.Decode.PeriodFrames))
	}
	if c.Decode.Workers < 0 {
		errs = append(errs, fmt.Errorf("decode.workers %d is negative", c.Decode.Workers))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}

	return nil
}

// EncodeOptions converts the encode section. Progress and Logger are left
// for the caller.
func (c *Config) EncodeOptions() (codec.EncodeOptions, error) {
	outSize, err := codec.OutSizeForRatio(c.Encode.WindowSize, c.Encode.Ratio)
	if err != nil {
		return codec.EncodeOptions{}, err
	}

	storage, err := quant.StorageForBits(c.Encode.StorageBits)
	if err != nil {
		return codec.EncodeOptions{}, err
	}

	return codec.EncodeOptions{
		WindowSize: c.Encode.WindowSize,
		OutSize:    outSize,
		Storage:    storage,
		FloorHz:    c.Encode.FloorHz,
		CeilingHz:  c.Encode.CeilingHz,
		Workers:    c.Encode.Workers,
	}, nil
}

// DecodeOptions converts the decode section.
func (c *Config) DecodeOptions() (codec.DecodeOptions, error) {
	mode, err := codec.ParseReconstruction(c.Decode.Mode)
	if err != nil {
		return codec.DecodeOptions{}, err
	}

	return codec.DecodeOptions{Mode: mode, Workers: c.Decode.Workers}, nil
}
