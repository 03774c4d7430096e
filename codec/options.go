// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"fmt"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"github.com/ik5/xprs/container"
	"github.com/ik5/xprs/fft"
	"github.com/ik5/xprs/quant"
	"github.com/ik5/xprs/spectral"
)

const (
	DefaultWindowSize = 2048
	DefaultRatio      = 8
)

// Progress receives per-window completion events. Step is called from
// worker goroutines and must be safe for concurrent use.
type Progress interface {
	Begin(total int)
	Step()
}

// EncodeOptions configures Encode.
type EncodeOptions struct {
	WindowSize int
	OutSize    int
	Storage    quant.Storage
	FloorHz    float64
	CeilingHz  float64
	Workers    int
	Progress   Progress
	Logger     *zap.Logger
}

// DefaultEncodeOptions is a 2048-sample window at ratio 8 with narrow
// storage.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		WindowSize: DefaultWindowSize,
		OutSize:    DefaultWindowSize / DefaultRatio,
		Storage:    quant.Narrow,
		CeilingHz:  spectral.DefaultCeilingHz,
		Workers:    runtime.GOMAXPROCS(0),
	}
}

// OutSizeForRatio derives the retained components per window from a
// compression ratio.
func OutSizeForRatio(windowSize, ratio int) (int, error) {
	if ratio < 1 {
		return 0, fmt.Errorf("%w: ratio %d", ErrInvalidRatio, ratio)
	}
	if windowSize <= 0 {
		return 0, fmt.Errorf("%w: window size %d", ErrInvalidOptions, windowSize)
	}

	out := windowSize / ratio
	if out == 0 {
		return 0, fmt.Errorf("%w: ratio %d with window size %d", ErrInvalidRatio, ratio, windowSize)
	}

	return out, nil
}

func (o EncodeOptions) validate() error {
	if !fft.IsPowerOfTwo(o.WindowSize) {
		return fmt.Errorf("window size %d: %w", o.WindowSize, fft.ErrNotPowerOfTwo)
	}
	if o.WindowSize > container.MaxWindowSize {
		return fmt.Errorf("%w: window size %d exceeds %d", ErrInvalidOptions, o.WindowSize, container.MaxWindowSize)
	}
	if o.OutSize < 1 || o.OutSize > o.WindowSize {
		return fmt.Errorf("%w: out size %d not in [1, %d]", ErrInvalidOptions, o.OutSize, o.WindowSize)
	}
	if !o.Storage.Valid() {
		return fmt.Errorf("%w: code %d", quant.ErrUnknownStorage, uint16(o.Storage))
	}
	return nil
}

// Reconstruction selects how a sparse positive-frequency spectrum becomes
// real samples.
type Reconstruction int

const (
	// Mirror writes conj(X[k]) into bin N-k before inverting, giving a
	// real signal at full amplitude.
	Mirror Reconstruction = iota
	// RealPart inverts the one-sided spectrum and keeps the real part,
	// which halves the amplitude of every non-DC component.
	RealPart
)

func (m Reconstruction) String() string {
	switch m {
	case Mirror:
		return "mirror"
	case RealPart:
		return "real"
	default:
		return fmt.Sprintf("reconstruction(%d)", int(m))
	}
}

// ParseReconstruction accepts "mirror" or "real".
func ParseReconstruction(s string) (Reconstruction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mirror", "":
		return Mirror, nil
	case "real":
		return RealPart, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// DecodeOptions configures Decode.
type DecodeOptions struct {
	Mode    Reconstruction
	Workers int
	Logger  *zap.Logger
}

// DefaultDecodeOptions mirrors conjugates and uses every CPU.
func DefaultDecodeOptions() DecodeOptions {
	return DecodeOptions{
		Mode:    Mirror,
		Workers: runtime.GOMAXPROCS(0),
	}
}

func workers(n int) int {
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}

func logger(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
