// SPDX-License-Identifier: EPL-2.0

package container

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/ik5/xprs/spectral"
)

// ReadHeader parses and validates the fixed header.
func ReadHeader(r io.Reader) (Header, error) {
	buf := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Header{}, fmt.Errorf("%w: header: %w", ErrTruncated, err)
		}
		return Header{}, fmt.Errorf("reading header: %w", err)
	}

	return unmarshalHeader(buf)
}

// Read parses a whole container. Records are read in the order Write
// emits them; bytes after the last record are ignored.
func Read(r io.Reader) (*Container, error) {
	br := bufio.NewReaderSize(r, 64*1024)

	h, err := ReadHeader(br)
	if err != nil {
		return nil, err
	}

	c := &Container{
		Header: h,
		Tracks: make([][]spectral.Component, h.Channels),
	}
	for ch := range c.Tracks {
		c.Tracks[ch] = make([]spectral.Component, 0, min(h.Records, 1<<20))
	}

	rec := make([]byte, h.RecordSize())
	for i := range h.Records {
		for ch := range h.Channels {
			if _, err := io.ReadFull(br, rec); err != nil {
				if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
					return nil, fmt.Errorf("%w: record %d channel %d: %w", ErrTruncated, i, ch, err)
				}
				return nil, fmt.Errorf("reading record %d: %w", i, err)
			}

			idx, coef, err := h.Storage.Record(rec)
			if err != nil {
				return nil, err
			}
			if int(idx) >= h.WindowSize {
				return nil, fmt.Errorf("%w: record %d channel %d index %d", ErrIndexOutOfRange, i, ch, idx)
			}

			c.Tracks[ch] = append(c.Tracks[ch], spectral.Component{Index: idx, Coef: coef})
		}
	}

	return c, nil
}
