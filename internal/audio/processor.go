// Package audio turns arbitrary input audio into the mono float sample
// buffer the pitch estimator consumes. Format decoding is delegated to
// ffmpeg; WAV reading and resampling happen in-process.
package audio

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/ultrastar-tools/autopitch/pkg/utils"
)

// DecodeError reports a failed media conversion or an unreadable input.
type DecodeError struct {
	Path   string
	Output string // stderr of the external tool, if any
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("decoding %s: %v (%s)", e.Path, e.Err, e.Output)
	}
	return fmt.Sprintf("decoding %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

type ConvertWAVConfig struct {
	SampleRate int // defaults to 16000
}

// ConvertToMonoWAV converts an audio file to mono 16-bit PCM WAV at the
// requested rate and writes it into outputDir under a fresh name. The
// caller owns the returned file.
func ConvertToMonoWAV(
	ctx context.Context,
	inputPath string,
	outputDir string,
	cfg ConvertWAVConfig,
) (string, error) {

	if cfg.SampleRate == 0 {
		cfg.SampleRate = 16000
	}

	if _, err := os.Stat(inputPath); err != nil {
		return "", &DecodeError{Path: inputPath, Err: err}
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 2*time.Minute)
		defer cancel()
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", err
	}

	outputPath := filepath.Join(outputDir, uuid.NewString()+".wav")

	tmpPath := outputPath + ".tmp.wav"
	defer os.Remove(tmpPath)

	cmd := exec.CommandContext(
		ctx,
		"ffmpeg",
		"-y",
		"-v", "error",
		"-i", inputPath,
		"-ac", "1", // mono
		"-ar", fmt.Sprintf("%d", cfg.SampleRate),
		"-c:a", "pcm_s16le",
		tmpPath,
	)

	if out, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", &DecodeError{Path: inputPath, Output: string(out), Err: err}
	}

	if err := utils.MoveFile(tmpPath, outputPath); err != nil {
		return "", err
	}

	return outputPath, nil
}
