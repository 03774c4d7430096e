// SPDX-License-Identifier: EPL-2.0

package fft

import "errors"

var (
	ErrNotPowerOfTwo  = errors.New("transform length must be a power of two")
	ErrLengthMismatch = errors.New("buffer length does not match plan")
)
