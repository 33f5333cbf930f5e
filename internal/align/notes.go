package align

import (
	"fmt"
	"math"
)

// ReferenceHz is the frequency of pitch 0. UltraStar pitches are semitone
// offsets from C4 (MIDI 60), so the scale sits 60 below MIDI and A4 = 9.
const ReferenceHz = 261.6255653005986

// Semitone quantizes a frequency to the nearest equal-tempered semitone
// offset from ReferenceHz. Exact half steps round away from zero.
func Semitone(hz float64) int {
	return int(math.Round(12 * math.Log2(hz/ReferenceHz)))
}

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteName renders a pitch offset as a letter name with octave, e.g.
// NoteName(0) = "C4", NoteName(9) = "A4", NoteName(12) = "C5". Display
// only; the file format stores the raw integer.
func NoteName(pitch int) string {
	midi := pitch + 60
	octave := int(math.Floor(float64(midi)/12)) - 1
	name := noteNames[((midi%12)+12)%12]
	return fmt.Sprintf("%s%d", name, octave)
}
