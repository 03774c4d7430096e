// SPDX-License-Identifier: EPL-2.0

package spectral

import "errors"

var (
	ErrInvalidOutSize  = errors.New("out size must be positive")
	ErrIndexOverflow   = errors.New("bin index does not fit in 16 bits")
	ErrInvalidRange    = errors.New("invalid frequency range")
	ErrInvalidSampling = errors.New("sample rate must be positive")
)
