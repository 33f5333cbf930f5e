package audio

import (
	"math"
	"testing"
)

func TestResampleLength(t *testing.T) {
	cases := []struct {
		in, from, to, want int
	}{
		{44100, 44100, 16000, 16000},
		{48000, 48000, 16000, 16000},
		{22050, 44100, 16000, 8000},
		{100, 16000, 16000, 100},
		{0, 44100, 16000, 0},
	}
	for _, c := range cases {
		out := Resample(make([]float64, c.in), c.from, c.to)
		if len(out) != c.want {
			t.Errorf("Resample(%d samples, %d->%d): expected %d samples, got %d",
				c.in, c.from, c.to, c.want, len(out))
		}
	}
}

func TestResampleSameRateCopies(t *testing.T) {
	in := []float64{0.1, 0.2, 0.3}
	out := Resample(in, 16000, 16000)
	out[0] = 9
	if in[0] != 0.1 {
		t.Error("Resample at equal rates must not alias the input")
	}
}

func TestResamplePreservesDC(t *testing.T) {
	in := make([]float64, 4410)
	for i := range in {
		in[i] = 0.5
	}
	out := Resample(in, 44100, 16000)
	for i, v := range out {
		if math.Abs(v-0.5) > 1e-6 {
			t.Fatalf("DC level not preserved at %d: %f", i, v)
		}
	}
}

func TestResamplePreservesToneFrequency(t *testing.T) {
	// A 440 Hz tone downsampled 44.1k -> 16k should still cross zero
	// about 880 times per second.
	const fromRate, toRate = 44100, 16000
	in := make([]float64, fromRate) // one second
	for i := range in {
		in[i] = math.Sin(2 * math.Pi * 440 * float64(i) / fromRate)
	}

	out := Resample(in, fromRate, toRate)

	crossings := 0
	for i := 1; i < len(out); i++ {
		if (out[i-1] < 0) != (out[i] < 0) {
			crossings++
		}
	}
	if crossings < 850 || crossings > 910 {
		t.Errorf("Expected ~880 zero crossings for a 440 Hz tone, got %d", crossings)
	}
}
