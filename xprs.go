// SPDX-License-Identifier: EPL-2.0

package xprs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ik5/xprs/audio"
	"github.com/ik5/xprs/codec"
	"github.com/ik5/xprs/container"
	"github.com/ik5/xprs/formats/aiff"
	"github.com/ik5/xprs/formats/mp3"
	"github.com/ik5/xprs/formats/vorbis"
	"github.com/ik5/xprs/formats/wav"
)

// NewRegistry returns a registry with every bundled input format.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()

	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})

	return reg
}

// LoadPCM decodes the file at path with the decoder registered for its
// extension.
func LoadPCM(reg *audio.Registry, path string) (*audio.PCM, error) {
	dec, err := reg.ForPath(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	defer src.Close()

	pcm, err := audio.ReadPCM(src)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	return pcm, nil
}

// EncodeFile encodes src into a container at dst.
func EncodeFile(ctx context.Context, reg *audio.Registry, src, dst string, opts codec.EncodeOptions) (container.Header, error) {
	pcm, err := LoadPCM(reg, src)
	if err != nil {
		return container.Header{}, stageErr(codec.StageParse, err)
	}

	c, err := codec.Encode(ctx, pcm, opts)
	if err != nil {
		return container.Header{}, err
	}

	err = writeAtomic(dst, func(f *os.File) error {
		return container.Write(f, c)
	})
	if err != nil {
		return container.Header{}, stageErr(codec.StageSerialize, err)
	}

	return c.Header, nil
}

// ReadContainerFile parses the container at path.
func ReadContainerFile(path string) (*container.Container, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return container.Read(f)
}

// ReadHeaderFile parses only the header of the container at path.
func ReadHeaderFile(path string) (container.Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return container.Header{}, err
	}
	defer f.Close()

	return container.ReadHeader(f)
}

// DecodeFile reads and decodes the container at path.
func DecodeFile(ctx context.Context, path string, opts codec.DecodeOptions) (*audio.PCM, error) {
	c, err := ReadContainerFile(path)
	if err != nil {
		return nil, stageErr(codec.StageParse, err)
	}

	return codec.Decode(ctx, c, opts)
}

// WriteWAVFile writes pcm to path as a 16-bit WAV.
func WriteWAVFile(path string, pcm *audio.PCM) error {
	return writeAtomic(path, func(f *os.File) error {
		return wav.WritePCM(f, pcm)
	})
}

// writeAtomic runs write against a temporary file in path's directory and
// renames it over path only if everything succeeded.
func writeAtomic(path string, write func(*os.File) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := write(tmp); err != nil {
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}

func stageErr(stage codec.Stage, err error) error {
	return &codec.Error{Stage: stage, Channel: -1, Window: -1, Err: err}
}
