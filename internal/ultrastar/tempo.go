package ultrastar

import (
	"strconv"
	"strings"
)

// TicksPerBeat is fixed by the UltraStar format: note timestamps are in
// quarter-beat ticks, so the effective tick rate is BPM*4/60 per second.
const TicksPerBeat = 4

// Tempo maps beat offsets to absolute song time.
type Tempo struct {
	BPM   float64 // beats per minute from the #BPM header
	GapMS float64 // milliseconds before beat 0, from the #GAP header
}

// BeatTime converts a beat offset to absolute seconds.
func (t Tempo) BeatTime(beat int) float64 {
	return t.GapMS/1000 + float64(beat)/(t.BPM*TicksPerBeat/60)
}

// Tempo derives the document's tempo mapping. #BPM is required and must be
// positive; #GAP defaults to 0 when absent. Both accept a decimal comma,
// which UltraStar files written by German-locale editors use.
func (d *Document) Tempo() (Tempo, error) {
	raw, ok := d.Header("BPM")
	if !ok {
		return Tempo{}, &FormatError{Reason: "missing #BPM header"}
	}
	bpm, err := parseDecimal(raw)
	if err != nil || bpm <= 0 {
		return Tempo{}, &FormatError{Reason: "invalid #BPM value " + strconv.Quote(raw)}
	}

	tempo := Tempo{BPM: bpm}
	if raw, ok := d.Header("GAP"); ok {
		gap, err := parseDecimal(raw)
		if err != nil {
			return Tempo{}, &FormatError{Reason: "invalid #GAP value " + strconv.Quote(raw)}
		}
		tempo.GapMS = gap
	}
	return tempo, nil
}

func parseDecimal(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}
