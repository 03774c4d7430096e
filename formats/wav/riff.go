// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/riff"
)

// MaxDepth bounds LIST nesting.
const MaxDepth = 8

// Node is one chunk of a RIFF file. RIFF and LIST nodes carry a Form and
// their Children in file order; every other node carries its payload in
// Data, without the pad byte.
type Node struct {
	ID       string
	Form     string
	Data     []byte
	Children []*Node
}

// Child returns the first direct child tagged id, or nil.
func (n *Node) Child(id string) *Node {
	for _, c := range n.Children {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// ParseRIFF reads a whole RIFF file into a tree. Bytes past the size in
// the RIFF header are not read.
func ParseRIFF(r io.Reader) (*Node, error) {
	p := riff.New(r)
	if err := p.ParseHeaders(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}
	if string(p.ID[:]) != "RIFF" {
		return nil, fmt.Errorf("%w: tag %q", ErrNotWavFile, p.ID[:])
	}

	body := r
	// the form tag is already consumed; a zero size is left by some
	// streaming writers and means "until EOF"
	if p.Size >= 4 {
		body = io.LimitReader(r, int64(p.Size)-4)
	}

	children, err := parseChunks(body, 1)
	if err != nil {
		return nil, err
	}

	return &Node{ID: "RIFF", Form: string(p.Format[:]), Children: children}, nil
}

func parseChunks(r io.Reader, depth int) ([]*Node, error) {
	if depth > MaxDepth {
		return nil, ErrRIFFTooDeep
	}

	p := riff.New(r)

	var nodes []*Node
	for {
		id, size, err := p.IDnSize()
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			// a short tail cannot hold a chunk header
			return nodes, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading chunk header: %w", err)
		}

		// the declared size is untrusted; only what is present gets buffered
		data, err := io.ReadAll(io.LimitReader(r, int64(size)))
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", id[:], err)
		}
		if int64(len(data)) < int64(size) {
			return nil, fmt.Errorf("%w: %q wants %d bytes, has %d", ErrTruncatedChunk, id[:], size, len(data))
		}
		if size%2 == 1 {
			var pad [1]byte
			if _, err := io.ReadFull(r, pad[:]); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("reading pad byte of %q: %w", id[:], err)
			}
		}

		node := &Node{ID: string(id[:])}
		if node.ID == "LIST" && len(data) >= 4 {
			node.Form = string(data[:4])
			node.Children, err = parseChunks(bytes.NewReader(data[4:]), depth+1)
			if err != nil {
				return nil, fmt.Errorf("in LIST %q: %w", node.Form, err)
			}
		} else {
			node.Data = data
		}

		nodes = append(nodes, node)
	}
}
