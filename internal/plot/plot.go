// Package plot renders a PNG of the pitch track for manual review: the
// song's spectrogram with every confident estimator frame marked on top.
package plot

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/eligwz/spectrogram"

	"github.com/ultrastar-tools/autopitch/pkg/models"
)

const (
	imageWidth  = 2048
	imageHeight = 512
)

// Render writes the debug plot to path. Frames below the confidence
// threshold are omitted, matching what the aligner gets to work with.
func Render(path string, samples []float64, sampleRate int, frames []models.Frame, confidence float64) error {
	img := spectrogram.NewImage128(image.Rect(0, 0, imageWidth, imageHeight))

	black := spectrogram.ParseColor("000000")
	draw.Draw(img, img.Bounds(), image.NewUniform(black), image.Point{}, draw.Src)

	// Spectrogram background. RECTANGLE: false = Hamming window,
	// DFT: false = FFT, MAG: true, LOG10: false = linear scale.
	spectrogram.Drawfft(
		img,
		samples,
		uint32(sampleRate),
		uint32(imageHeight),
		false,
		false,
		true,
		false,
	)

	total := float64(len(samples)) / float64(sampleRate)
	if total > 0 {
		overlayFrames(img, frames, confidence, total, sampleRate)
	}

	return spectrogram.SavePng(img, path)
}

func overlayFrames(img draw.Image, frames []models.Frame, confidence, total float64, sampleRate int) {
	marker := color.RGBA{R: 0, G: 255, B: 64, A: 255}
	nyquist := float64(sampleRate) / 2

	for _, f := range frames {
		if f.Confidence < confidence {
			continue
		}
		x := int(f.Time / total * imageWidth)
		y := imageHeight - 1 - int(f.Hz/nyquist*imageHeight)
		setDot(img, x, y, marker)
	}
}

// setDot paints a 3x3 marker clamped to the image bounds.
func setDot(img draw.Image, x, y int, c color.Color) {
	b := img.Bounds()
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			px, py := x+dx, y+dy
			if px >= b.Min.X && px < b.Max.X && py >= b.Min.Y && py < b.Max.Y {
				img.Set(px, py, c)
			}
		}
	}
}
