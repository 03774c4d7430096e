// SPDX-License-Identifier: EPL-2.0

package playback

import "errors"

var (
	// ErrUnderrun is returned by a Device whose buffer ran dry. Play
	// recovers from it once per period.
	ErrUnderrun = errors.New("playback underrun")

	// ErrDevice wraps any other device failure.
	ErrDevice = errors.New("playback device error")
)
