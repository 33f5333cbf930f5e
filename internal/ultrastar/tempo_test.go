package ultrastar

import (
	"errors"
	"math"
	"testing"
)

func parseDoc(t *testing.T, input string) *Document {
	t.Helper()
	doc, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return doc
}

func TestTempoBeatTime(t *testing.T) {
	doc := parseDoc(t, "#BPM:120\n#GAP:1000\n: 0 4 0 la\nE\n")
	tempo, err := doc.Tempo()
	if err != nil {
		t.Fatalf("Tempo failed: %v", err)
	}

	// 120 BPM * 4 ticks = 8 ticks/second; gap shifts everything by 1s.
	cases := []struct {
		beat int
		want float64
	}{
		{0, 1.0},
		{4, 1.5},
		{8, 2.0},
		{-8, 0.0},
	}
	for _, c := range cases {
		got := tempo.BeatTime(c.beat)
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("BeatTime(%d) = %f, expected %f", c.beat, got, c.want)
		}
	}
}

func TestTempoGapDefaultsToZero(t *testing.T) {
	doc := parseDoc(t, "#BPM:60\n: 0 4 0 la\nE\n")
	tempo, err := doc.Tempo()
	if err != nil {
		t.Fatalf("Tempo failed: %v", err)
	}
	if tempo.GapMS != 0 {
		t.Errorf("Expected gap 0, got %f", tempo.GapMS)
	}
	// 60 BPM * 4 ticks = 4 ticks/second.
	if got := tempo.BeatTime(4); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("BeatTime(4) = %f, expected 1.0", got)
	}
}

func TestTempoDecimalComma(t *testing.T) {
	doc := parseDoc(t, "#BPM:122,5\n#GAP:437,5\n: 0 4 0 la\nE\n")
	tempo, err := doc.Tempo()
	if err != nil {
		t.Fatalf("Tempo failed: %v", err)
	}
	if math.Abs(tempo.BPM-122.5) > 1e-9 {
		t.Errorf("Expected BPM 122.5, got %f", tempo.BPM)
	}
	if math.Abs(tempo.GapMS-437.5) > 1e-9 {
		t.Errorf("Expected gap 437.5, got %f", tempo.GapMS)
	}
}

func TestTempoErrors(t *testing.T) {
	inputs := []string{
		": 0 4 0 la\nE\n",          // no BPM at all
		"#BPM:0\n: 0 4 0 la\nE\n",  // zero
		"#BPM:-5\n: 0 4 0 la\nE\n", // negative
		"#BPM:xx\n: 0 4 0 la\nE\n", // not a number
		"#BPM:120\n#GAP:xx\nE\n",   // bad gap
	}
	for _, input := range inputs {
		doc := parseDoc(t, input)
		_, err := doc.Tempo()
		if err == nil {
			t.Errorf("Expected tempo error for %q", input)
			continue
		}
		var ferr *FormatError
		if !errors.As(err, &ferr) {
			t.Errorf("Expected *FormatError, got %T", err)
		}
	}
}
