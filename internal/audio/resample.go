package audio

import (
	"math"

	"github.com/mjibson/go-dsp/fft"
)

// Resample converts samples from one rate to another in the frequency
// domain: transform, truncate or zero-pad the spectrum to the new length,
// transform back. This is the Fourier-method resampling the estimator's
// reference pipeline uses, and it is exact for band-limited signals.
func Resample(samples []float64, fromRate, toRate int) []float64 {
	if fromRate == toRate || len(samples) == 0 {
		out := make([]float64, len(samples))
		copy(out, samples)
		return out
	}

	n := len(samples)
	outLen := int(math.Ceil(float64(n) * float64(toRate) / float64(fromRate)))
	if outLen < 1 {
		outLen = 1
	}

	spectrum := fft.FFTReal(samples)

	resized := make([]complex128, outLen)
	keep := n
	if outLen < keep {
		keep = outLen
	}
	// Positive frequencies, including DC.
	half := keep / 2
	for i := 0; i <= half && i < outLen && i < n; i++ {
		resized[i] = spectrum[i]
	}
	// Mirrored negative frequencies.
	for i := 1; i < keep-half; i++ {
		resized[outLen-i] = spectrum[n-i]
	}

	restored := fft.IFFT(resized)

	gain := float64(outLen) / float64(n)
	out := make([]float64, outLen)
	for i, c := range restored {
		out[i] = real(c) * gain
	}
	return out
}
