package audio

import (
	"errors"
	"os"

	gosound "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

var errNotWAV = errors.New("not a valid WAV file")

// ReadWAV reads a PCM WAV file and returns mono samples normalized to
// [-1, 1] plus the sample rate. Multi-channel audio is averaged down.
func ReadWAV(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, &DecodeError{Path: path, Err: err}
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, 0, &DecodeError{Path: path, Err: errNotWAV}
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, 0, &DecodeError{Path: path, Err: err}
	}

	samples := toMonoFloat64(buf, int(decoder.BitDepth))
	return samples, buf.Format.SampleRate, nil
}

// toMonoFloat64 normalizes an interleaved PCM buffer to mono [-1, 1].
func toMonoFloat64(buf *gosound.IntBuffer, bitDepth int) []float64 {
	channels := buf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}
	scale := 1.0 / float64(int(1)<<(uint(bitDepth)-1))

	frames := len(buf.Data) / channels
	out := make([]float64, frames)
	for i := 0; i < frames; i++ {
		sum := 0.0
		for c := 0; c < channels; c++ {
			sum += float64(buf.Data[i*channels+c])
		}
		out[i] = sum / float64(channels) * scale
	}
	return out
}
