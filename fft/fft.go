// SPDX-License-Identifier: EPL-2.0

package fft

import (
	"fmt"
	"math"
	"math/bits"
	"sync"
)

// Plan holds the twiddle table for one transform length. A Plan is
// read-only after construction and may be shared between goroutines.
type Plan struct {
	n       int
	log     int
	twiddle []complex128 // exp(-2πi·j/n), j < n/2
}

var plans sync.Map // int -> *Plan

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Log2 returns log2(n) for a power of two n.
func Log2(n int) int {
	return bits.TrailingZeros(uint(n))
}

// NewPlan returns the plan for length n, building it on first use.
func NewPlan(n int) (*Plan, error) {
	if !IsPowerOfTwo(n) {
		return nil, fmt.Errorf("%w: %d", ErrNotPowerOfTwo, n)
	}

	if p, ok := plans.Load(n); ok {
		return p.(*Plan), nil
	}

	p := &Plan{
		n:       n,
		log:     Log2(n),
		twiddle: make([]complex128, n/2),
	}

	omega := -2 * math.Pi / float64(n)
	for j := range p.twiddle {
		s, c := math.Sincos(omega * float64(j))
		p.twiddle[j] = complex(c, s)
	}

	actual, _ := plans.LoadOrStore(n, p)
	return actual.(*Plan), nil
}

// Len returns the transform length.
func (p *Plan) Len() int { return p.n }

// Forward computes the DFT of real int16 samples into dst.
func (p *Plan) Forward(dst []complex64, src []int16) error {
	if len(src) != p.n || len(dst) != p.n {
		return fmt.Errorf("%w: src %d, dst %d, plan %d", ErrLengthMismatch, len(src), len(dst), p.n)
	}

	work := make([]complex128, p.n)
	for i, x := range src {
		work[i] = complex(float64(x), 0)
	}

	p.butterflies(work, false)
	p.reorder(dst, work, 1)

	return nil
}

// ForwardFloat is Forward for float input.
func (p *Plan) ForwardFloat(dst []complex64, src []float32) error {
	if len(src) != p.n || len(dst) != p.n {
		return fmt.Errorf("%w: src %d, dst %d, plan %d", ErrLengthMismatch, len(src), len(dst), p.n)
	}

	work := make([]complex128, p.n)
	for i, x := range src {
		work[i] = complex(float64(x), 0)
	}

	p.butterflies(work, false)
	p.reorder(dst, work, 1)

	return nil
}

// InverseComplex computes the normalized inverse DFT of src into dst.
func (p *Plan) InverseComplex(dst, src []complex64) error {
	if len(src) != p.n || len(dst) != p.n {
		return fmt.Errorf("%w: src %d, dst %d, plan %d", ErrLengthMismatch, len(src), len(dst), p.n)
	}

	work := make([]complex128, p.n)
	for i, x := range src {
		work[i] = complex128(x)
	}

	p.butterflies(work, true)
	p.reorder(dst, work, 1/float64(p.n))

	return nil
}

// Inverse computes the normalized inverse DFT of src and keeps the real
// part. The result is the exact inverse only when src is Hermitian
// symmetric; otherwise the imaginary part is discarded.
func (p *Plan) Inverse(dst []float32, src []complex64) error {
	if len(dst) != p.n {
		return fmt.Errorf("%w: dst %d, plan %d", ErrLengthMismatch, len(dst), p.n)
	}

	out := make([]complex64, p.n)
	if err := p.InverseComplex(out, src); err != nil {
		return err
	}

	for i, c := range out {
		dst[i] = real(c)
	}

	return nil
}

// butterflies runs the decimation-in-frequency stages in place. The result is
// left in bit-reversed order.
func (p *Plan) butterflies(work []complex128, inverse bool) {
	blockSize := p.n
	numBlocks := 1

	for stage := range p.log {
		half := blockSize / 2
		for j := range numBlocks {
			base := blockSize * j
			for k := range half {
				x := work[base+k]
				y := work[base+k+half]

				w := p.twiddle[k<<stage]
				if inverse {
					w = complex(real(w), -imag(w))
				}

				work[base+k] = x + y
				work[base+k+half] = (x - y) * w
			}
		}
		numBlocks *= 2
		blockSize /= 2
	}
}

func (p *Plan) reorder(dst []complex64, work []complex128, scale float64) {
	shift := bits.UintSize - p.log
	for i, c := range work {
		j := bits.Reverse(uint(i)) >> shift
		dst[j] = complex64(complex(real(c)*scale, imag(c)*scale))
	}
}

// Forward transforms samples with the cached plan for their length.
func Forward(samples []int16) ([]complex64, error) {
	p, err := NewPlan(len(samples))
	if err != nil {
		return nil, err
	}

	out := make([]complex64, len(samples))
	if err := p.Forward(out, samples); err != nil {
		return nil, err
	}

	return out, nil
}

// Inverse returns the real part of the inverse transform of spectrum.
func Inverse(spectrum []complex64) ([]float32, error) {
	p, err := NewPlan(len(spectrum))
	if err != nil {
		return nil, err
	}

	out := make([]float32, len(spectrum))
	if err := p.Inverse(out, spectrum); err != nil {
		return nil, err
	}

	return out, nil
}
