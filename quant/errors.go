// SPDX-License-Identifier: EPL-2.0

package quant

import "errors"

var (
	ErrUnknownStorage = errors.New("unknown storage kind")
	ErrShortRecord    = errors.New("record buffer too short")
)
