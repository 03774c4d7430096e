// SPDX-License-Identifier: EPL-2.0

package spectral

import (
	"fmt"
	"math"
)

// DefaultCeilingHz is the upper edge of the audible range.
const DefaultCeilingHz = 20000.0

// Component is one retained bin: its index and complex value.
type Component struct {
	Index uint16
	Coef  complex64
}

// Magnitude returns |Coef|.
func (c Component) Magnitude() float32 {
	return float32(math.Hypot(float64(real(c.Coef)), float64(imag(c.Coef))))
}

// Selector keeps the OutSize strongest bins of a spectrum whose frequency
// lies in [FloorHz, CeilingHz).
type Selector struct {
	OutSize   int
	FloorHz   float64
	CeilingHz float64 // zero means DefaultCeilingHz
}

// Range returns the candidate bins [lo, hi) for an n-point transform.
// hi never exceeds n/2, so mirror bins are never candidates.
func (s Selector) Range(sampleRate, n int) (lo, hi int, err error) {
	if sampleRate <= 0 {
		return 0, 0, fmt.Errorf("%w: %d", ErrInvalidSampling, sampleRate)
	}

	ceiling := s.CeilingHz
	if ceiling == 0 {
		ceiling = DefaultCeilingHz
	}
	if !finite(s.FloorHz) || !finite(ceiling) || s.FloorHz < 0 || ceiling < 0 || s.FloorHz > ceiling {
		return 0, 0, fmt.Errorf("%w: floor %g Hz, ceiling %g Hz", ErrInvalidRange, s.FloorHz, ceiling)
	}

	lo = max(FrequencyToBin(s.FloorHz, sampleRate, n), 0)
	hi = min(FrequencyToBin(ceiling, sampleRate, n), n/2)
	if n == 1 {
		hi = 1
	}
	lo = min(lo, hi)

	return lo, hi, nil
}

// Select returns exactly OutSize components sorted by descending
// magnitude. Slots that no candidate beat keep the zero placeholder
// (index 0, value 0). Equal magnitudes keep the lower bin.
func (s Selector) Select(spectrum []complex64, sampleRate int) ([]Component, error) {
	if s.OutSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOutSize, s.OutSize)
	}

	lo, hi, err := s.Range(sampleRate, len(spectrum))
	if err != nil {
		return nil, err
	}
	if hi > math.MaxUint16+1 {
		return nil, fmt.Errorf("%w: %d", ErrIndexOverflow, hi-1)
	}

	out := make([]Component, s.OutSize)
	mags := make([]float32, s.OutSize)
	last := s.OutSize - 1

	for k := lo; k < hi; k++ {
		c := Component{Index: uint16(k), Coef: spectrum[k]}
		m := c.Magnitude()

		if m < mags[last] {
			continue
		}

		for i := range out {
			if m > mags[i] {
				copy(out[i+1:], out[i:last])
				copy(mags[i+1:], mags[i:last])
				out[i] = c
				mags[i] = m
				break
			}
		}
	}

	return out, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
