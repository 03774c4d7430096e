// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")
	ErrUnknownFormat  = errors.New("unknown audio format")
	ErrNoChannels     = errors.New("channel count must be positive")
	ErrRaggedTracks   = errors.New("channel tracks differ in length")
)

// FormatError reports a file extension no decoder is registered for.
type FormatError struct {
	Format string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unsupported format %q", e.Format)
}

func (e *FormatError) Unwrap() error { return ErrUnknownFormat }
