// SPDX-License-Identifier: EPL-2.0

package quant

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Storage selects the on-disk width of coefficient components. The only
// values are Narrow and Wide; constructors reject everything else.
type Storage uint16

const (
	// Narrow stores each component as a little-endian bfloat16.
	Narrow Storage = 1
	// Wide stores each component as a little-endian float32.
	Wide Storage = 2
)

// IndexSize is the width of the frequency index that leads every record.
const IndexSize = 2

// ParseStorage validates an on-disk storage code.
func ParseStorage(code uint16) (Storage, error) {
	switch s := Storage(code); s {
	case Narrow, Wide:
		return s, nil
	default:
		return 0, fmt.Errorf("%w: code %d", ErrUnknownStorage, code)
	}
}

// StorageForBits maps a component width in bits (16 or 32) to a Storage.
func StorageForBits(bits int) (Storage, error) {
	switch bits {
	case 16:
		return Narrow, nil
	case 32:
		return Wide, nil
	default:
		return 0, fmt.Errorf("%w: %d bits", ErrUnknownStorage, bits)
	}
}

// Valid reports whether s is Narrow or Wide.
func (s Storage) Valid() bool {
	return s == Narrow || s == Wide
}

// Bits is the per-component width.
func (s Storage) Bits() int {
	switch s {
	case Narrow:
		return 16
	case Wide:
		return 32
	default:
		return 0
	}
}

// RecordSize is the encoded size of one component record: index plus
// real and imaginary parts.
func (s Storage) RecordSize() int {
	switch s {
	case Narrow:
		return IndexSize + 2 + 2
	case Wide:
		return IndexSize + 4 + 4
	default:
		return 0
	}
}

func (s Storage) String() string {
	switch s {
	case Narrow:
		return "narrow"
	case Wide:
		return "wide"
	default:
		return fmt.Sprintf("storage(%d)", uint16(s))
	}
}

// PutRecord encodes one component into dst, which must hold RecordSize
// bytes.
func (s Storage) PutRecord(dst []byte, index uint16, c complex64) error {
	size := s.RecordSize()
	if size == 0 {
		return fmt.Errorf("%w: code %d", ErrUnknownStorage, uint16(s))
	}
	if len(dst) < size {
		return fmt.Errorf("%w: %d < %d", ErrShortRecord, len(dst), size)
	}

	binary.LittleEndian.PutUint16(dst[0:2], index)

	switch s {
	case Narrow:
		binary.LittleEndian.PutUint16(dst[2:4], uint16(BFloat16FromFloat32(real(c))))
		binary.LittleEndian.PutUint16(dst[4:6], uint16(BFloat16FromFloat32(imag(c))))
	case Wide:
		binary.LittleEndian.PutUint32(dst[2:6], math.Float32bits(real(c)))
		binary.LittleEndian.PutUint32(dst[6:10], math.Float32bits(imag(c)))
	}

	return nil
}

// Record decodes one component from src, widening narrow values to
// float32.
func (s Storage) Record(src []byte) (uint16, complex64, error) {
	size := s.RecordSize()
	if size == 0 {
		return 0, 0, fmt.Errorf("%w: code %d", ErrUnknownStorage, uint16(s))
	}
	if len(src) < size {
		return 0, 0, fmt.Errorf("%w: %d < %d", ErrShortRecord, len(src), size)
	}

	index := binary.LittleEndian.Uint16(src[0:2])

	var re, im float32
	switch s {
	case Narrow:
		re = BFloat16(binary.LittleEndian.Uint16(src[2:4])).Float32()
		im = BFloat16(binary.LittleEndian.Uint16(src[4:6])).Float32()
	case Wide:
		re = math.Float32frombits(binary.LittleEndian.Uint32(src[2:6]))
		im = math.Float32frombits(binary.LittleEndian.Uint32(src[6:10]))
	}

	return index, complex(re, im), nil
}

// Quantize returns c as it reads back after a round trip through s.
func (s Storage) Quantize(c complex64) complex64 {
	if s != Narrow {
		return c
	}
	return complex(
		BFloat16FromFloat32(real(c)).Float32(),
		BFloat16FromFloat32(imag(c)).Float32(),
	)
}
