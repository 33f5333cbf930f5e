package autopitch

import (
	"context"

	"github.com/ultrastar-tools/autopitch/pkg/models"
)

// Service pitches karaoke files. One Service can process any number of
// songs; Close releases the underlying model.
type Service interface {
	// Pitch reads the karaoke file, estimates pitch over the audio file
	// (or YouTube URL) and writes "<stem>_pitched<ext>" next to the input.
	Pitch(ctx context.Context, lyricPath, audioPath string) (*models.Result, error)
	Close() error
}

// Estimator is the pitch model as a black box: audio samples in, one
// (frequency, confidence) frame per hop out, in ascending time order.
type Estimator interface {
	Estimate(samples []float64, sampleRate int) ([]models.Frame, error)
}

// Logger is the logging capability the service needs.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Debugf(format string, args ...any)
}
