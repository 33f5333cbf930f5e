// Package spice runs the SPICE pitch-estimation model through ONNX Runtime
// and converts its raw output into timestamped pitch frames.
package spice

import "math"

// Model input contract: 16 kHz mono samples, one output frame per 512
// samples (32 ms hop).
const (
	SampleRate = 16000
	HopSize    = 512
)

// Calibration constants published with the SPICE model, used to map its
// normalized pitch output onto frequency.
const (
	ptOffset      = 25.58
	ptSlope       = 63.07
	fMin          = 10.0
	binsPerOctave = 12.0
)

// PitchToHz converts SPICE's normalized pitch scalar to hertz.
func PitchToHz(pitch float64) float64 {
	cqtBin := pitch*ptSlope + ptOffset
	return fMin * math.Pow(2, cqtBin/binsPerOctave)
}

// FrameTime returns the timestamp of frame index i in seconds. The model
// reports pitch and uncertainty only; timing is implied by the hop size.
func FrameTime(i int) float64 {
	return float64(i) * HopSize / SampleRate
}
