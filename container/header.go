// SPDX-License-Identifier: EPL-2.0

package container

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/ik5/xprs/fft"
	"github.com/ik5/xprs/quant"
	"github.com/ik5/xprs/spectral"
)

const (
	// Magic opens every container.
	Magic = "XPRS"
	// Marker separates the header fields from the records.
	Marker = "DATA"
	// HeaderSize is the fixed size of the header including both tags.
	HeaderSize = 30

	// MaxWindowSize is the largest window whose bins fit a 16-bit index.
	MaxWindowSize = math.MaxUint16 + 1
)

// Header describes the layout of a container.
type Header struct {
	WindowSize int // samples per analysis window (chunk_size)
	Records    int // records per channel (chunk_count)
	OutSize    int // records per window
	SampleRate int
	Channels   int
	Storage    quant.Storage
}

// Windows is the number of analysis windows per channel.
func (h Header) Windows() int {
	if h.OutSize <= 0 {
		return 0
	}
	return h.Records / h.OutSize
}

// RecordSize is the encoded size of one record.
func (h Header) RecordSize() int {
	return h.Storage.RecordSize()
}

// DataSize is the byte length of the record section.
func (h Header) DataSize() int64 {
	return int64(h.Records) * int64(h.Channels) * int64(h.RecordSize())
}

// Validate checks the fields a reader needs to walk the records.
func (h Header) Validate() error {
	if !h.Storage.Valid() {
		return fmt.Errorf("%w: code %d", quant.ErrUnknownStorage, uint16(h.Storage))
	}

	switch {
	case !fft.IsPowerOfTwo(h.WindowSize):
		return fmt.Errorf("%w: window size %d: %w", ErrInvalidHeader, h.WindowSize, fft.ErrNotPowerOfTwo)
	case h.WindowSize > MaxWindowSize:
		return fmt.Errorf("%w: window size %d exceeds %d", ErrInvalidHeader, h.WindowSize, MaxWindowSize)
	case h.OutSize < 1 || h.OutSize > h.WindowSize:
		return fmt.Errorf("%w: out size %d not in [1, %d]", ErrInvalidHeader, h.OutSize, h.WindowSize)
	case h.Records < 0 || h.Records%h.OutSize != 0:
		return fmt.Errorf("%w: record count %d is not a multiple of %d", ErrInvalidHeader, h.Records, h.OutSize)
	case h.Channels < 1:
		return fmt.Errorf("%w: channel count %d", ErrInvalidHeader, h.Channels)
	case h.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d", ErrInvalidHeader, h.SampleRate)
	}

	return nil
}

func (h Header) marshal() []byte {
	buf := make([]byte, HeaderSize)

	copy(buf[0:4], Magic)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(int32(h.WindowSize)))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(int32(h.Records)))
	binary.LittleEndian.PutUint32(buf[12:16], uint32(int32(h.OutSize)))
	binary.LittleEndian.PutUint32(buf[16:20], uint32(int32(h.SampleRate)))
	binary.LittleEndian.PutUint32(buf[20:24], uint32(int32(h.Channels)))
	binary.LittleEndian.PutUint16(buf[24:26], uint16(h.Storage))
	copy(buf[26:30], Marker)

	return buf
}

func unmarshalHeader(buf []byte) (Header, error) {
	if string(buf[0:4]) != Magic {
		return Header{}, fmt.Errorf("%w: tag %q", ErrBadMagic, buf[0:4])
	}
	if string(buf[26:30]) != Marker {
		return Header{}, fmt.Errorf("%w: tag %q", ErrBadMarker, buf[26:30])
	}

	storage, err := quant.ParseStorage(binary.LittleEndian.Uint16(buf[24:26]))
	if err != nil {
		return Header{}, err
	}

	h := Header{
		WindowSize: int(int32(binary.LittleEndian.Uint32(buf[4:8]))),
		Records:    int(int32(binary.LittleEndian.Uint32(buf[8:12]))),
		OutSize:    int(int32(binary.LittleEndian.Uint32(buf[12:16]))),
		SampleRate: int(int32(binary.LittleEndian.Uint32(buf[16:20]))),
		Channels:   int(int32(binary.LittleEndian.Uint32(buf[20:24]))),
		Storage:    storage,
	}

	return h, h.Validate()
}

// Container is a decoded file: the header plus one track of records per
// channel.
type Container struct {
	Header
	Tracks [][]spectral.Component
}

// Window returns the records of window w on channel ch.
func (c *Container) Window(ch, w int) []spectral.Component {
	start := w * c.OutSize
	return c.Tracks[ch][start : start+c.OutSize]
}
