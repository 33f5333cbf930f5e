// Package align maps the estimator's frame sequence onto the timed notes
// of a karaoke document and writes a discrete pitch into every note.
package align

import (
	"sort"

	"github.com/ultrastar-tools/autopitch/internal/ultrastar"
	"github.com/ultrastar-tools/autopitch/pkg/models"
)

// DefaultConfidence is the minimum frame confidence required for a frame
// to contribute to a note's pitch.
const DefaultConfidence = 0.85

// Aligner assigns a pitch to every note of a document. Frames must be in
// ascending time order, which the estimator guarantees.
type Aligner struct {
	Frames     []models.Frame
	Confidence float64
}

// Stats counts how the notes of a run were resolved.
type Stats struct {
	Pitched   int // notes pitched from confident frames
	Defaulted int // notes that fell back to the neutral pitch 0
}

// Apply pitches every note line in place. Non-note lines are untouched.
// A note whose interval holds no confident frame gets the neutral pitch 0;
// only missing tempo metadata fails the run.
func (a Aligner) Apply(doc *ultrastar.Document) (Stats, error) {
	tempo, err := doc.Tempo()
	if err != nil {
		return Stats{}, err
	}

	var stats Stats
	for _, note := range doc.Notes() {
		startSec := tempo.BeatTime(note.Start)
		endSec := tempo.BeatTime(note.Start + note.Duration)

		frames := a.window(startSec, endSec)
		if len(frames) == 0 {
			// Interval shorter than one frame hop, or duration 0: use the
			// nearest frame instead.
			frames = a.nearest((startSec + endSec) / 2)
		}

		hz, ok := confidentMedian(frames, a.Confidence)
		if !ok {
			note.SetPitch(0)
			stats.Defaulted++
			continue
		}
		note.SetPitch(Semitone(hz))
		stats.Pitched++
	}
	return stats, nil
}

// window returns the frames with timestamps in [startSec, endSec).
func (a Aligner) window(startSec, endSec float64) []models.Frame {
	lo := sort.Search(len(a.Frames), func(i int) bool { return a.Frames[i].Time >= startSec })
	hi := sort.Search(len(a.Frames), func(i int) bool { return a.Frames[i].Time >= endSec })
	return a.Frames[lo:hi]
}

// nearest returns a one-frame slice holding the frame closest to sec, or
// nothing when there are no frames at all.
func (a Aligner) nearest(sec float64) []models.Frame {
	if len(a.Frames) == 0 {
		return nil
	}
	i := sort.Search(len(a.Frames), func(i int) bool { return a.Frames[i].Time >= sec })
	if i == len(a.Frames) {
		i--
	} else if i > 0 && sec-a.Frames[i-1].Time < a.Frames[i].Time-sec {
		i--
	}
	return a.Frames[i : i+1]
}

// confidentMedian filters frames by the confidence threshold and returns
// the median of the surviving frequencies. Low confidence is treated as
// no information, not as a best guess.
func confidentMedian(frames []models.Frame, threshold float64) (float64, bool) {
	hzs := make([]float64, 0, len(frames))
	for _, f := range frames {
		if f.Confidence >= threshold {
			hzs = append(hzs, f.Hz)
		}
	}
	if len(hzs) == 0 {
		return 0, false
	}
	return median(hzs), true
}

func median(vals []float64) float64 {
	sort.Float64s(vals)
	mid := len(vals) / 2
	if len(vals)%2 == 1 {
		return vals[mid]
	}
	return (vals[mid-1] + vals[mid]) / 2
}

// FrameSpan returns the total seconds covered by a frame sequence, used
// for progress reporting.
func FrameSpan(frames []models.Frame) float64 {
	if len(frames) == 0 {
		return 0
	}
	return frames[len(frames)-1].Time
}
