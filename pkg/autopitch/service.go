// Package autopitch wires the pitching pipeline together: parse the
// karaoke file, decode the audio, run the pitch model, align frames to
// syllables and write the pitched copy.
package autopitch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ultrastar-tools/autopitch/internal/align"
	"github.com/ultrastar-tools/autopitch/internal/audio"
	"github.com/ultrastar-tools/autopitch/internal/plot"
	"github.com/ultrastar-tools/autopitch/internal/spice"
	"github.com/ultrastar-tools/autopitch/internal/ultrastar"
	"github.com/ultrastar-tools/autopitch/pkg/logger"
	"github.com/ultrastar-tools/autopitch/pkg/models"
	"github.com/ultrastar-tools/autopitch/pkg/utils"
)

// OutputSuffix is inserted between the karaoke file's stem and extension.
const OutputSuffix = "_pitched"

type pitchService struct {
	estimator Estimator
	model     *spice.Model // set only when the service loaded it
	log       Logger
	config    *Config
}

func NewService(opts ...Option) (Service, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Confidence < 0 || cfg.Confidence > 1 {
		return nil, fmt.Errorf("confidence threshold %g out of range [0, 1]", cfg.Confidence)
	}

	if cfg.Logger == nil {
		cfg.Logger = logger.GetLogger()
	}

	svc := &pitchService{
		estimator: cfg.Estimator,
		log:       cfg.Logger,
		config:    cfg,
	}

	if svc.estimator == nil {
		model, err := spice.Load(spice.Config{
			ModelPath:     cfg.ModelPath,
			UseGPU:        cfg.UseGPU,
			SharedLibrary: cfg.SharedLibrary,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to load pitch model: %w", err)
		}
		svc.estimator = model
		svc.model = model
	}

	return svc, nil
}

// OutputPath returns where Pitch writes its result for a given input.
func OutputPath(lyricPath string) string {
	return utils.WithSuffix(lyricPath, OutputSuffix)
}

func (s *pitchService) Pitch(ctx context.Context, lyricPath, audioPath string) (*models.Result, error) {
	started := time.Now()

	// 1. Parse the karaoke file and validate tempo metadata before any
	// audio work happens.
	doc, err := ultrastar.ParseFile(lyricPath)
	if err != nil {
		return nil, fmt.Errorf("reading karaoke file: %w", err)
	}
	if _, err := doc.Tempo(); err != nil {
		return nil, fmt.Errorf("reading karaoke file: %w", err)
	}
	s.log.Infof("Parsed %s: %d lines, %d notes", filepath.Base(lyricPath), len(doc.Lines), len(doc.Notes()))

	// 2. Resolve the audio source, downloading it first when it is a URL.
	audioSrc := audioPath
	if utils.IsYouTubeURL(audioPath) {
		s.log.Infof("Downloading audio from %s", audioPath)
		downloaded, err := audio.DownloadAudio(ctx, audioPath, s.config.TempDir)
		if err != nil {
			return nil, fmt.Errorf("downloading audio: %w", err)
		}
		defer os.Remove(downloaded)
		audioSrc = downloaded
	}

	// 3. Decode to mono samples.
	samples, sampleRate, err := s.decode(ctx, audioSrc)
	if err != nil {
		return nil, fmt.Errorf("decoding audio: %w", err)
	}
	s.log.Infof("Decoded %.1fs of audio at %d Hz", float64(len(samples))/float64(sampleRate), sampleRate)

	// 4. Estimate pitch frames.
	frames, err := s.estimator.Estimate(samples, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("estimating pitch: %w", err)
	}
	s.log.Infof("Estimated %d pitch frames over %.1fs", len(frames), align.FrameSpan(frames))

	// 5. Align frames onto the notes.
	stats, err := align.Aligner{Frames: frames, Confidence: s.config.Confidence}.Apply(doc)
	if err != nil {
		return nil, fmt.Errorf("aligning pitch: %w", err)
	}
	s.log.Infof("Pitched %d notes, %d defaulted to 0", stats.Pitched, stats.Defaulted)

	// 6. Write the output in one shot once alignment succeeded.
	outputPath := OutputPath(lyricPath)
	if err := doc.WriteFile(outputPath); err != nil {
		return nil, fmt.Errorf("writing output file: %w", err)
	}

	if s.config.Plot {
		plotPath := strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ".png"
		if err := plot.Render(plotPath, samples, sampleRate, frames, s.config.Confidence); err != nil {
			s.log.Warnf("Failed to write pitch plot: %v", err)
		} else {
			s.log.Infof("Wrote pitch plot to %s", plotPath)
		}
	}

	return &models.Result{
		OutputPath: outputPath,
		Pitched:    stats.Pitched,
		Defaulted:  stats.Defaulted,
		Frames:     len(frames),
		Elapsed:    time.Since(started),
	}, nil
}

// decode produces mono samples from any audio file. WAV input is read
// directly; everything else goes through ffmpeg, with the temporary
// conversion removed before returning.
func (s *pitchService) decode(ctx context.Context, path string) ([]float64, int, error) {
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		if samples, rate, err := audio.ReadWAV(path); err == nil {
			return samples, rate, nil
		}
		// Fall through: non-PCM or otherwise odd WAV, let ffmpeg handle it.
	}

	wavPath, err := audio.ConvertToMonoWAV(ctx, path, s.config.TempDir, audio.ConvertWAVConfig{
		SampleRate: s.config.SampleRate,
	})
	if err != nil {
		return nil, 0, err
	}
	defer os.Remove(wavPath)

	return audio.ReadWAV(wavPath)
}

func (s *pitchService) Close() error {
	if s.model != nil {
		return s.model.Close()
	}
	return nil
}
