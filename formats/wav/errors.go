// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile            = errors.New("not a WAV file")
	ErrMissingFmtChunk       = errors.New("WAV has no fmt chunk")
	ErrMissingDataChunk      = errors.New("WAV has no data chunk")
	ErrMalformedFmtChunk     = errors.New("malformed fmt chunk")
	ErrOnlyPCM16bitSupported = errors.New("only PCM 16-bit supported")
	ErrTruncatedChunk        = errors.New("chunk extends past end of input")
	ErrRIFFTooDeep           = errors.New("RIFF lists nested too deep")
)
