package spice

import (
	"math"
	"testing"
)

func TestPitchToHzIsMonotonic(t *testing.T) {
	prev := PitchToHz(0)
	for p := 0.05; p <= 1.0; p += 0.05 {
		hz := PitchToHz(p)
		if hz <= prev {
			t.Errorf("PitchToHz not monotonic at %f: %f <= %f", p, hz, prev)
		}
		prev = hz
	}
}

func TestPitchToHzRange(t *testing.T) {
	// The calibration maps [0,1] roughly onto the vocal range; sanity
	// check both ends.
	low := PitchToHz(0)
	if math.Abs(low-fMin*math.Pow(2, ptOffset/binsPerOctave)) > 1e-9 {
		t.Errorf("Unexpected low end: %f", low)
	}
	if low < 40 || low > 100 {
		t.Errorf("Low end %f Hz outside plausible vocal floor", low)
	}
	high := PitchToHz(1)
	if high < 1000 || high > 4000 {
		t.Errorf("High end %f Hz outside plausible ceiling", high)
	}
}

func TestFrameTime(t *testing.T) {
	if FrameTime(0) != 0 {
		t.Errorf("Expected frame 0 at t=0, got %f", FrameTime(0))
	}
	// 512 samples at 16 kHz is a 32 ms hop.
	if got := FrameTime(1); math.Abs(got-0.032) > 1e-9 {
		t.Errorf("Expected 0.032s hop, got %f", got)
	}
	if got := FrameTime(100); math.Abs(got-3.2) > 1e-9 {
		t.Errorf("Expected frame 100 at 3.2s, got %f", got)
	}
}
