// SPDX-License-Identifier: EPL-2.0

package container

import "errors"

var (
	ErrBadMagic        = errors.New("not an XPRS container")
	ErrBadMarker       = errors.New("missing DATA marker")
	ErrTruncated       = errors.New("container is truncated")
	ErrInvalidHeader   = errors.New("invalid container header")
	ErrIndexOutOfRange = errors.New("frequency index outside window")
	ErrTrackLength     = errors.New("track length does not match header")
)
