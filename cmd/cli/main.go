package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/ultrastar-tools/autopitch/pkg/autopitch"
	"github.com/ultrastar-tools/autopitch/pkg/logger"
)

var (
	confidence float64
	useGPU     bool
	modelPath  string
	tempDir    string
	sharedLib  string
	plotOut    bool
)

func init() {
	flag.Float64Var(&confidence, "confidence", 0.85, "Minimum model confidence for a frame to count, in [0,1]")
	flag.Float64Var(&confidence, "c", 0.85, "Shorthand for -confidence")
	flag.BoolVar(&useGPU, "gpu", false, "Run inference on the GPU instead of the CPU")
	flag.StringVar(&modelPath, "model", getEnvOrDefault("AUTOPITCH_MODEL", "spice.onnx"), "Path to the SPICE ONNX model")
	flag.StringVar(&tempDir, "temp", getEnvOrDefault("AUTOPITCH_TEMP_DIR", os.TempDir()), "Directory for temporary audio conversion files")
	flag.StringVar(&sharedLib, "ort", os.Getenv("AUTOPITCH_ORT_LIB"), "Path to the onnxruntime shared library (optional)")
	flag.BoolVar(&plotOut, "plot", false, "Write a pitch plot PNG next to the output file")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	log := logger.GetLogger()

	flag.Usage = printUsage
	flag.Parse()

	printBanner()

	args := flag.Args()
	if len(args) != 2 {
		printUsage()
		os.Exit(1)
	}
	lyricPath, audioPath := args[0], args[1]

	// Reject bad flags before touching any file.
	if confidence < 0 || confidence > 1 {
		fmt.Printf("❌ Confidence must be between 0 and 1, got %g\n", confidence)
		log.Errorf("Confidence out of range: %g", confidence)
		os.Exit(1)
	}

	log.Infof("Pitching %s using audio from %s", lyricPath, audioPath)

	fmt.Println("🔧 Loading pitch model...")
	svc, err := autopitch.NewService(
		autopitch.WithConfidence(confidence),
		autopitch.WithGPU(useGPU),
		autopitch.WithModelPath(modelPath),
		autopitch.WithSharedLibrary(sharedLib),
		autopitch.WithTempDir(tempDir),
		autopitch.WithPlot(plotOut),
	)
	if err != nil {
		fmt.Printf("❌ Failed to initialize: %v\n", err)
		log.Errorf("Service initialization failed: %v", err)
		os.Exit(1)
	}
	defer svc.Close()

	fmt.Println("🎵 Analyzing audio and pitching notes...")
	fmt.Println("   This may take a few moments for long songs")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	res, err := svc.Pitch(ctx, lyricPath, audioPath)
	if err != nil {
		fmt.Printf("\n❌ %v\n", err)
		log.Errorf("Pitching failed: %v", err)
		os.Exit(1)
	}

	fmt.Println("\n✅ Done!")
	fmt.Printf("   Output:    %s\n", res.OutputPath)
	fmt.Printf("   Pitched:   %d notes\n", res.Pitched)
	fmt.Printf("   Defaulted: %d notes (below confidence %.2f)\n", res.Defaulted, confidence)
	fmt.Printf("   Frames:    %s\n", humanize.Comma(int64(res.Frames)))
	fmt.Printf("   Took:      %.3fs\n", res.Elapsed.Seconds())
	log.Infof("Completed in %.3fs", res.Elapsed.Seconds())
}

func printBanner() {
	banner := `
              _              _ _       _
   __ _ _   _| |_ ___  _ __ (_) |_ ___| |__
  / _' | | | | __/ _ \| '_ \| | __/ __| '_ \
 | (_| | |_| | || (_) | |_) | | || (__| | | |
  \__,_|\__,_|\__\___/| .__/|_|\__\___|_| |_|
                      |_|
        UltraStar Auto-Pitch CLI Tool
`
	fmt.Println(banner)
}

func printUsage() {
	fmt.Println("autopitch - assign pitches to timed UltraStar lyrics")
	fmt.Println("\nUsage:")
	fmt.Println("  autopitch [options] <karaoke_file> <audio_file_or_youtube_url>")
	fmt.Println("\nOptions:")
	fmt.Println("  -c, -confidence <float>  Minimum model confidence in [0,1] (default: 0.85)")
	fmt.Println("  -gpu                     Use GPU instead of CPU for inference")
	fmt.Println("  -model <path>            SPICE ONNX model (env: AUTOPITCH_MODEL, default: spice.onnx)")
	fmt.Println("  -temp <dir>              Temporary directory (env: AUTOPITCH_TEMP_DIR)")
	fmt.Println("  -ort <path>              onnxruntime shared library (env: AUTOPITCH_ORT_LIB)")
	fmt.Println("  -plot                    Write a pitch plot PNG next to the output")
	fmt.Println("\nExamples:")
	fmt.Println("  autopitch song.txt song.mp3")
	fmt.Println("  autopitch -c 0.9 -gpu song.txt song.ogg")
	fmt.Println("  autopitch song.txt \"https://youtube.com/watch?v=dQw4w9WgXcQ\"")
	fmt.Println("\nThe output is written next to the karaoke file as <name>_pitched<ext>.")
	fmt.Println("Pitches the model is not confident about default to 0 for manual review.")
}
