// SPDX-License-Identifier: EPL-2.0

package spectral

import (
	"errors"
	"math"
	"math/rand"
	"sort"
	"testing"
)

func TestFrequencyToBin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		freq       float64
		sampleRate int
		n          int
		want       int
	}{
		{"20kHz at 44.1kHz", 20000, 44100, 2048, 928},
		{"20kHz at 48kHz", 20000, 48000, 1024, 426},
		{"zero", 0, 44100, 2048, 0},
		{"nyquist", 22050, 44100, 2048, 1024},
		{"20kHz at 8kHz clamps to n", 20000, 8000, 8, 8},
		{"huge", 1e30, 44100, 2048, 2048},
		{"infinite", math.Inf(1), 44100, 2048, 2048},
		{"negative", -100, 44100, 2048, 0},
		{"nan", math.NaN(), 44100, 2048, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FrequencyToBin(tt.freq, tt.sampleRate, tt.n); got != tt.want {
				t.Errorf("FrequencyToBin() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBinToFrequency(t *testing.T) {
	t.Parallel()

	if got := BinToFrequency(512, 44100, 2048); got != 11025 {
		t.Errorf("BinToFrequency() = %v, want 11025", got)
	}
}

func TestSelector_Range(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		sel        Selector
		sampleRate int
		n          int
		lo, hi     int
		wantErr    error
	}{
		{"default ceiling", Selector{OutSize: 1}, 44100, 2048, 0, 928, nil},
		{"floor", Selector{OutSize: 1, FloorHz: 100}, 44100, 2048, 4, 928, nil},
		{"clamped to half", Selector{OutSize: 1}, 8000, 8, 0, 4, nil},
		{"custom ceiling", Selector{OutSize: 1, CeilingHz: 4000}, 8000, 16, 0, 8, nil},
		{"floor above ceiling", Selector{OutSize: 1, FloorHz: 30000}, 44100, 2048, 0, 0, ErrInvalidRange},
		{"huge ceiling clamps to half", Selector{OutSize: 1, CeilingHz: 1e30}, 44100, 2048, 0, 1024, nil},
		{"infinite ceiling", Selector{OutSize: 1, CeilingHz: math.Inf(1)}, 44100, 2048, 0, 0, ErrInvalidRange},
		{"nan ceiling", Selector{OutSize: 1, CeilingHz: math.NaN()}, 44100, 2048, 0, 0, ErrInvalidRange},
		{"nan floor", Selector{OutSize: 1, FloorHz: math.NaN()}, 44100, 2048, 0, 0, ErrInvalidRange},
		{"bad rate", Selector{OutSize: 1}, 0, 2048, 0, 0, ErrInvalidSampling},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lo, hi, err := tt.sel.Range(tt.sampleRate, tt.n)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Range() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if lo != tt.lo || hi != tt.hi {
				t.Errorf("Range() = [%d, %d), want [%d, %d)", lo, hi, tt.lo, tt.hi)
			}
		})
	}
}

func TestSelector_TopK(t *testing.T) {
	t.Parallel()

	spectrum := []complex64{
		5,           // 0 DC
		1,           // 1
		complex(0, 9), // 2
		3,           // 3
		-7,          // 4
		2,           // 5
		8,           // 6
		4,           // 7
		100, 100, 100, 100, 100, 100, 100, 100, // mirror half, never candidates
	}

	sel := Selector{OutSize: 3}
	got, err := sel.Select(spectrum, 16)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	wantIdx := []uint16{2, 6, 4}
	if len(got) != len(wantIdx) {
		t.Fatalf("len = %d, want %d", len(got), len(wantIdx))
	}
	for i, idx := range wantIdx {
		if got[i].Index != idx {
			t.Errorf("slot %d index = %d, want %d", i, got[i].Index, idx)
		}
		if got[i].Coef != spectrum[idx] {
			t.Errorf("slot %d coef = %v, want %v", i, got[i].Coef, spectrum[idx])
		}
	}
}

func TestSelector_TiesKeepLowerIndex(t *testing.T) {
	t.Parallel()

	spectrum := make([]complex64, 16)
	spectrum[3] = 4
	spectrum[5] = complex(0, 4)
	spectrum[6] = -4

	got, err := Selector{OutSize: 2}.Select(spectrum, 16)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	if got[0].Index != 3 || got[1].Index != 5 {
		t.Errorf("indices = [%d %d], want [3 5]", got[0].Index, got[1].Index)
	}
}

func TestSelector_PadsWithPlaceholders(t *testing.T) {
	t.Parallel()

	spectrum := make([]complex64, 8)
	spectrum[1] = 2

	got, err := Selector{OutSize: 3}.Select(spectrum, 8)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].Index != 1 {
		t.Errorf("slot 0 index = %d, want 1", got[0].Index)
	}
	for i := 1; i < 3; i++ {
		if got[i] != (Component{}) {
			t.Errorf("slot %d = %+v, want zero placeholder", i, got[i])
		}
	}
}

func TestSelector_FloorExcludesDC(t *testing.T) {
	t.Parallel()

	spectrum := make([]complex64, 16)
	spectrum[0] = 1000
	spectrum[1] = 1
	spectrum[2] = 2

	// 16 points at 16 Hz: one bin per Hz.
	got, err := Selector{OutSize: 2, FloorHz: 1}.Select(spectrum, 16)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	if got[0].Index != 2 || got[1].Index != 1 {
		t.Errorf("indices = [%d %d], want [2 1]", got[0].Index, got[1].Index)
	}
}

func TestSelector_HugeCeilingKeepsLowerHalf(t *testing.T) {
	t.Parallel()

	spectrum := make([]complex64, 2048)
	spectrum[5] = 100

	got, err := Selector{OutSize: 2, CeilingHz: 1e30}.Select(spectrum, 44100)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	if got[0].Index != 5 || got[0].Coef != 100 {
		t.Errorf("strongest = %+v, want bin 5 with 100", got[0])
	}
}

func TestSelector_Invariants(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(3))
	const (
		n          = 1024
		sampleRate = 44100
		outSize    = 32
	)

	sel := Selector{OutSize: outSize, FloorHz: 50}
	lo, hi, err := sel.Range(sampleRate, n)
	if err != nil {
		t.Fatalf("Range() error = %v", err)
	}

	for trial := range 20 {
		spectrum := make([]complex64, n)
		for i := range spectrum {
			spectrum[i] = complex(float32(rng.NormFloat64()*1000), float32(rng.NormFloat64()*1000))
		}

		got, err := sel.Select(spectrum, sampleRate)
		if err != nil {
			t.Fatalf("trial %d: Select() error = %v", trial, err)
		}
		if len(got) != outSize {
			t.Fatalf("trial %d: len = %d, want %d", trial, len(got), outSize)
		}

		for i, c := range got {
			if int(c.Index) < lo || int(c.Index) >= hi {
				t.Errorf("trial %d: slot %d index %d outside [%d, %d)", trial, i, c.Index, lo, hi)
			}
			if i > 0 && got[i-1].Magnitude() < c.Magnitude() {
				t.Errorf("trial %d: slot %d not descending", trial, i)
			}
		}

		// same set as a full sort over the allowed range
		mags := make([]float32, 0, hi-lo)
		for k := lo; k < hi; k++ {
			mags = append(mags, Component{Coef: spectrum[k]}.Magnitude())
		}
		sort.Slice(mags, func(i, j int) bool { return mags[i] > mags[j] })
		for i := range got {
			if got[i].Magnitude() != mags[i] {
				t.Errorf("trial %d: slot %d magnitude %v, want %v", trial, i, got[i].Magnitude(), mags[i])
			}
		}
	}
}

func TestSelector_InvalidOutSize(t *testing.T) {
	t.Parallel()

	_, err := Selector{}.Select(make([]complex64, 8), 8000)
	if !errors.Is(err, ErrInvalidOutSize) {
		t.Errorf("Select() error = %v, want ErrInvalidOutSize", err)
	}
}

func BenchmarkSelect(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	spectrum := make([]complex64, 2048)
	for i := range spectrum {
		spectrum[i] = complex(float32(rng.NormFloat64()), float32(rng.NormFloat64()))
	}
	sel := Selector{OutSize: 256}

	b.ReportAllocs()

	for b.Loop() {
		_, _ = sel.Select(spectrum, 44100)
	}
}
