package spice

import (
	"fmt"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/ultrastar-tools/autopitch/internal/audio"
	"github.com/ultrastar-tools/autopitch/pkg/models"
)

// Tensor names of the ONNX export of SPICE.
const (
	inputName       = "input"
	pitchOutput     = "pitch"
	uncertainOutput = "uncertainty"
)

// InferenceError reports a model that could not be loaded or produced
// output of an unexpected shape.
type InferenceError struct {
	Stage string
	Err   error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("pitch model: %s: %v", e.Stage, e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }

// Config selects the model file and the compute device.
type Config struct {
	ModelPath     string
	UseGPU        bool
	SharedLibrary string // optional path to the onnxruntime shared library
}

// Model wraps an ONNX Runtime session over the SPICE graph.
type Model struct {
	session *ort.DynamicAdvancedSession
}

// Load initializes ONNX Runtime and creates the inference session. With
// UseGPU set the CUDA execution provider is appended; otherwise inference
// runs on all available CPU threads.
func Load(cfg Config) (*Model, error) {
	if cfg.SharedLibrary != "" {
		ort.SetSharedLibraryPath(cfg.SharedLibrary)
	}

	if err := ort.InitializeEnvironment(); err != nil {
		return nil, &InferenceError{Stage: "initializing runtime", Err: err}
	}

	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, &InferenceError{Stage: "creating session options", Err: err}
	}
	defer opts.Destroy()

	if err := opts.SetGraphOptimizationLevel(ort.GraphOptimizationLevelEnableAll); err != nil {
		return nil, &InferenceError{Stage: "setting optimization level", Err: err}
	}

	if cfg.UseGPU {
		cudaOpts, err := ort.NewCUDAProviderOptions()
		if err != nil {
			return nil, &InferenceError{Stage: "creating CUDA provider", Err: err}
		}
		if err := cudaOpts.Update(map[string]string{"device_id": "0"}); err != nil {
			cudaOpts.Destroy()
			return nil, &InferenceError{Stage: "configuring CUDA provider", Err: err}
		}
		err = opts.AppendExecutionProviderCUDA(cudaOpts)
		cudaOpts.Destroy()
		if err != nil {
			return nil, &InferenceError{Stage: "enabling CUDA provider", Err: err}
		}
	} else if err := opts.SetIntraOpNumThreads(0); err != nil {
		return nil, &InferenceError{Stage: "setting thread count", Err: err}
	}

	session, err := ort.NewDynamicAdvancedSession(
		cfg.ModelPath,
		[]string{inputName},
		[]string{pitchOutput, uncertainOutput},
		opts,
	)
	if err != nil {
		return nil, &InferenceError{Stage: "loading model", Err: err}
	}

	return &Model{session: session}, nil
}

// Estimate runs the model over the samples and returns one frame per hop.
// Input at a rate other than 16 kHz is resampled first; the tail is padded
// with silence to a whole number of hops, matching the model's contract.
func (m *Model) Estimate(samples []float64, sampleRate int) ([]models.Frame, error) {
	if sampleRate != SampleRate {
		samples = audio.Resample(samples, sampleRate, SampleRate)
	}

	n := len(samples)
	padded := (n + HopSize - 1) / HopSize * HopSize
	input := make([]float32, padded)
	for i, s := range samples {
		input[i] = float32(s)
	}

	inputTensor, err := ort.NewTensor(ort.NewShape(int64(padded)), input)
	if err != nil {
		return nil, &InferenceError{Stage: "creating input tensor", Err: err}
	}
	defer inputTensor.Destroy()

	outputs := make([]ort.Value, 2)
	if err := m.session.Run([]ort.Value{inputTensor}, outputs); err != nil {
		return nil, &InferenceError{Stage: "running inference", Err: err}
	}
	defer outputs[0].Destroy()
	defer outputs[1].Destroy()

	pitchTensor, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, &InferenceError{Stage: "reading output", Err: fmt.Errorf("pitch output is not float32")}
	}
	uncertainTensor, ok := outputs[1].(*ort.Tensor[float32])
	if !ok {
		return nil, &InferenceError{Stage: "reading output", Err: fmt.Errorf("uncertainty output is not float32")}
	}

	pitch := pitchTensor.GetData()
	uncertainty := uncertainTensor.GetData()
	if len(pitch) == 0 || len(pitch) != len(uncertainty) {
		return nil, &InferenceError{
			Stage: "reading output",
			Err:   fmt.Errorf("unexpected output shape: %d pitch vs %d uncertainty values", len(pitch), len(uncertainty)),
		}
	}

	frames := make([]models.Frame, len(pitch))
	for i := range pitch {
		frames[i] = models.Frame{
			Time:       FrameTime(i),
			Hz:         PitchToHz(float64(pitch[i])),
			Confidence: 1 - float64(uncertainty[i]),
		}
	}
	return frames, nil
}

// Close releases the session and the runtime environment.
func (m *Model) Close() error {
	if m.session != nil {
		m.session.Destroy()
		m.session = nil
	}
	ort.DestroyEnvironment()
	return nil
}
