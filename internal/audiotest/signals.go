// SPDX-License-Identifier: EPL-2.0

// Package audiotest generates deterministic PCM for tests.
package audiotest

import (
	"math"

	"github.com/ik5/xprs/audio"
)

// Sine returns frames of a sine at freqHz on every channel. amplitude is
// in sample units.
func Sine(sampleRate, channels, frames int, freqHz, amplitude float64) *audio.PCM {
	return Generate(sampleRate, channels, frames, func(frame, _ int) int16 {
		t := float64(frame) / float64(sampleRate)
		return int16(math.Round(amplitude * math.Sin(2*math.Pi*freqHz*t)))
	})
}

// ConstantWindows builds a buffer whose window w on channel ch holds
// levels[ch][w] in every sample.
func ConstantWindows(sampleRate, windowSize int, levels ...[]int16) *audio.PCM {
	frames := 0
	if len(levels) > 0 {
		frames = len(levels[0]) * windowSize
	}

	return Generate(sampleRate, len(levels), frames, func(frame, ch int) int16 {
		return levels[ch][frame/windowSize]
	})
}

// Generate fills an interleaved buffer from wave.
func Generate(sampleRate, channels, frames int, wave func(frame, ch int) int16) *audio.PCM {
	pcm := &audio.PCM{
		SampleRate: sampleRate,
		Channels:   channels,
		Samples:    make([]int16, frames*channels),
	}

	for f := range frames {
		for ch := range channels {
			pcm.Samples[f*channels+ch] = wave(f, ch)
		}
	}

	return pcm
}

// MaxAbsDiff is the largest per-sample distance between a and b over
// their common prefix.
func MaxAbsDiff(a, b []int16) int {
	worst := 0
	for i := range min(len(a), len(b)) {
		d := int(a[i]) - int(b[i])
		if d < 0 {
			d = -d
		}
		worst = max(worst, d)
	}
	return worst
}

// Peak is the largest absolute sample in s.
func Peak(s []int16) int {
	peak := 0
	for _, v := range s {
		peak = max(peak, int(math.Abs(float64(v))))
	}
	return peak
}
