// SPDX-License-Identifier: EPL-2.0

package oto

import "errors"

// ErrFormatMismatch is returned when the shared host output is already
// open with a different format.
var ErrFormatMismatch = errors.New("audio output already open with another format")
