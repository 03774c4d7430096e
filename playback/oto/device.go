// SPDX-License-Identifier: EPL-2.0

package oto

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/ik5/xprs/playback"
)

// oto allows one context per process, so every Device shares it.
var (
	hostMu       sync.Mutex
	hostCtx      *oto.Context
	hostRate     int
	hostChannels int
)

func hostContext(sampleRate, channels int, buffer time.Duration) (*oto.Context, error) {
	hostMu.Lock()
	defer hostMu.Unlock()

	if hostCtx != nil {
		if hostRate != sampleRate || hostChannels != channels {
			return nil, fmt.Errorf("%w: open at %d Hz/%d ch, want %d Hz/%d ch",
				ErrFormatMismatch, hostRate, hostChannels, sampleRate, channels)
		}
		return hostCtx, nil
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   buffer,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	hostCtx, hostRate, hostChannels = ctx, sampleRate, channels

	return ctx, nil
}

// Device plays through the host's default output. oto handles
// underruns internally, so Write never reports playback.ErrUnderrun.
type Device struct {
	// BufferSize is the host buffer length; zero lets oto pick.
	BufferSize time.Duration
	// PollInterval is how often Drain checks for the end of playback.
	PollInterval time.Duration

	player *oto.Player
	pw     *io.PipeWriter
	buf    []byte
}

var _ playback.Device = (*Device)(nil)

func (d *Device) Open(sampleRate, channels int) error {
	ctx, err := hostContext(sampleRate, channels, d.BufferSize)
	if err != nil {
		return err
	}

	pr, pw := io.Pipe()
	d.pw = pw
	d.player = ctx.NewPlayer(pr)
	d.player.Play()

	return nil
}

func (d *Device) Write(period []int16) error {
	if cap(d.buf) < 2*len(period) {
		d.buf = make([]byte, 2*len(period))
	}
	d.buf = d.buf[:2*len(period)]

	for i, s := range period {
		binary.LittleEndian.PutUint16(d.buf[2*i:], uint16(s))
	}

	if _, err := d.pw.Write(d.buf); err != nil {
		return fmt.Errorf("feeding player: %w", err)
	}

	return nil
}

func (d *Device) Recover(err error) error {
	return err
}

func (d *Device) Drain() error {
	if err := d.pw.Close(); err != nil {
		return err
	}

	interval := d.PollInterval
	if interval <= 0 {
		interval = 10 * time.Millisecond
	}
	for d.player.IsPlaying() {
		time.Sleep(interval)
	}

	return nil
}

func (d *Device) Close() error {
	if d.pw != nil {
		d.pw.Close()
	}
	if d.player != nil {
		return d.player.Close()
	}
	return nil
}
