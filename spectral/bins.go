// SPDX-License-Identifier: EPL-2.0

package spectral

// FrequencyToBin maps a frequency to its bin in an n-point transform,
// truncating toward zero. The result is clamped to [0, n]; NaN maps to 0.
func FrequencyToBin(freqHz float64, sampleRate, n int) int {
	k := freqHz * float64(n) / float64(sampleRate)
	switch {
	case !(k > 0):
		return 0
	case k >= float64(n):
		return n
	}
	return int(k)
}

// BinToFrequency is the center frequency of bin k.
func BinToFrequency(k, sampleRate, n int) float64 {
	return float64(sampleRate) * float64(k) / float64(n)
}
