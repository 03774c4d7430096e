// SPDX-License-Identifier: EPL-2.0

package container

import (
	"bufio"
	"fmt"
	"io"
)

// Write serializes c: the header, then for every record position each
// channel's record in channel order.
func Write(w io.Writer, c *Container) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if len(c.Tracks) != c.Channels {
		return fmt.Errorf("%w: %d tracks for %d channels", ErrTrackLength, len(c.Tracks), c.Channels)
	}
	for ch, t := range c.Tracks {
		if len(t) != c.Records {
			return fmt.Errorf("%w: channel %d has %d records, want %d", ErrTrackLength, ch, len(t), c.Records)
		}
	}

	bw := bufio.NewWriterSize(w, 64*1024)

	if _, err := bw.Write(c.marshal()); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	rec := make([]byte, c.RecordSize())
	for i := range c.Records {
		for ch := range c.Channels {
			comp := c.Tracks[ch][i]
			if int(comp.Index) >= c.WindowSize {
				return fmt.Errorf("%w: channel %d record %d index %d", ErrIndexOutOfRange, ch, i, comp.Index)
			}
			if err := c.Storage.PutRecord(rec, comp.Index, comp.Coef); err != nil {
				return err
			}
			if _, err := bw.Write(rec); err != nil {
				return fmt.Errorf("writing record %d: %w", i, err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing container: %w", err)
	}

	return nil
}
