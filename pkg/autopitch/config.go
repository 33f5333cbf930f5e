package autopitch

import (
	"os"

	"github.com/ultrastar-tools/autopitch/internal/align"
	"github.com/ultrastar-tools/autopitch/internal/spice"
)

type Config struct {
	Confidence    float64 // minimum frame confidence, [0, 1]
	UseGPU        bool
	ModelPath     string
	SharedLibrary string // onnxruntime shared library, empty = system default
	TempDir       string
	SampleRate    int
	Plot          bool // write a pitch plot PNG next to the output file
	Logger        Logger
	Estimator     Estimator
}

type Option func(*Config)

func WithConfidence(confidence float64) Option {
	return func(c *Config) {
		c.Confidence = confidence
	}
}

func WithGPU(useGPU bool) Option {
	return func(c *Config) {
		c.UseGPU = useGPU
	}
}

func WithModelPath(path string) Option {
	return func(c *Config) {
		c.ModelPath = path
	}
}

func WithSharedLibrary(path string) Option {
	return func(c *Config) {
		c.SharedLibrary = path
	}
}

func WithTempDir(dir string) Option {
	return func(c *Config) {
		c.TempDir = dir
	}
}

func WithPlot(plot bool) Option {
	return func(c *Config) {
		c.Plot = plot
	}
}

func WithLogger(log Logger) Option {
	return func(c *Config) {
		c.Logger = log
	}
}

// WithEstimator swaps the pitch model for a caller-supplied estimator.
// Tests use this to run the pipeline with deterministic frames.
func WithEstimator(est Estimator) Option {
	return func(c *Config) {
		c.Estimator = est
	}
}

func defaultConfig() *Config {
	return &Config{
		Confidence: align.DefaultConfidence,
		ModelPath:  "spice.onnx",
		TempDir:    os.TempDir(),
		SampleRate: spice.SampleRate,
	}
}
