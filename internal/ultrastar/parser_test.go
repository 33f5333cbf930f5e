package ultrastar

import (
	"errors"
	"testing"
)

const sampleSong = "#TITLE:Testsong\n" +
	"#ARTIST:Nobody\n" +
	"#BPM:120\n" +
	"#GAP:1000\n" +
	": 0 4 0 Hel\n" +
	": 4 4 0 lo\n" +
	"* 8 8 0  world\n" +
	"- 20\n" +
	"F 24 2 0 yeah\n" +
	"E\n"

func TestParseClassifiesLines(t *testing.T) {
	doc, err := Parse([]byte(sampleSong))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	wantKinds := []Kind{
		KindHeader, KindHeader, KindHeader, KindHeader,
		KindNote, KindNote, KindNote,
		KindPhraseBreak,
		KindNote,
		KindEnd,
	}
	if len(doc.Lines) != len(wantKinds) {
		t.Fatalf("Expected %d lines, got %d", len(wantKinds), len(doc.Lines))
	}
	for i, want := range wantKinds {
		if doc.Lines[i].Kind != want {
			t.Errorf("Line %d: expected kind %d, got %d", i, want, doc.Lines[i].Kind)
		}
	}
}

func TestParseNoteFields(t *testing.T) {
	doc, err := Parse([]byte(sampleSong))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	notes := doc.Notes()
	if len(notes) != 4 {
		t.Fatalf("Expected 4 notes, got %d", len(notes))
	}

	first := notes[0]
	if first.NoteType != NoteNormal {
		t.Errorf("Expected note type ':', got %q", first.NoteType)
	}
	if first.Start != 0 || first.Duration != 4 || first.Pitch != 0 {
		t.Errorf("Unexpected note fields: start=%d dur=%d pitch=%d", first.Start, first.Duration, first.Pitch)
	}
	if first.Text != "Hel" {
		t.Errorf("Expected text %q, got %q", "Hel", first.Text)
	}

	// Double space before the syllable marks a word divider; the leading
	// space belongs to the text.
	golden := notes[2]
	if golden.NoteType != NoteGolden {
		t.Errorf("Expected golden note type, got %q", golden.NoteType)
	}
	if golden.Text != " world" {
		t.Errorf("Expected leading-space text %q, got %q", " world", golden.Text)
	}

	if notes[3].NoteType != NoteFreestyle {
		t.Errorf("Expected freestyle note type, got %q", notes[3].NoteType)
	}
}

func TestParsePhraseBreakBeat(t *testing.T) {
	doc, err := Parse([]byte("#BPM:120\n- 20 24\n: 24 2 0 la\nE\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if doc.Lines[1].Kind != KindPhraseBreak {
		t.Fatalf("Expected phrase break, got kind %d", doc.Lines[1].Kind)
	}
	if doc.Lines[1].BreakBeat != 20 {
		t.Errorf("Expected break beat 20, got %d", doc.Lines[1].BreakBeat)
	}
}

func TestParseHeaderValues(t *testing.T) {
	doc, err := Parse([]byte(sampleSong))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	title, ok := doc.Header("TITLE")
	if !ok || title != "Testsong" {
		t.Errorf("Expected TITLE %q, got %q (ok=%v)", "Testsong", title, ok)
	}

	// Case-insensitive lookup.
	if _, ok := doc.Header("bpm"); !ok {
		t.Error("Header lookup should be case-insensitive")
	}

	if _, ok := doc.Header("VIDEO"); ok {
		t.Error("Header lookup found a tag that is not present")
	}
}

func TestParseRejectsMalformedLines(t *testing.T) {
	bad := []string{
		"hello world\n",
		": 0 4\n",
		": x 4 0 la\n",
		": 0 x 0 la\n",
		": 0 4 x la\n",
		": 0 -4 0 la\n",
		"#TITLE missing colon\n",
		"- \n",
	}

	for _, input := range bad {
		_, err := Parse([]byte("#BPM:120\n" + input))
		if err == nil {
			t.Errorf("Expected parse error for %q", input)
			continue
		}
		var ferr *FormatError
		if !errors.As(err, &ferr) {
			t.Errorf("Expected *FormatError for %q, got %T", input, err)
		} else if ferr.Line != 2 {
			t.Errorf("Expected error on line 2 for %q, got line %d", input, ferr.Line)
		}
	}
}

func TestParseToleratesBlankAndTrailingWhitespace(t *testing.T) {
	input := "#BPM:120\n\n   \n: 0 4 0 la \nE\n"
	doc, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if doc.Lines[1].Kind != KindBlank || doc.Lines[2].Kind != KindBlank {
		t.Error("Blank lines not classified as blank")
	}
	// Trailing whitespace stays part of the syllable text.
	if doc.Notes()[0].Text != "la " {
		t.Errorf("Expected text %q, got %q", "la ", doc.Notes()[0].Text)
	}
}

func TestParseBOM(t *testing.T) {
	input := "\xef\xbb\xbf#BPM:120\n: 0 4 0 la\nE\n"
	doc, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse failed on BOM input: %v", err)
	}
	if _, ok := doc.Header("BPM"); !ok {
		t.Error("BOM not stripped from first header line")
	}
	if string(doc.Bytes()) != input {
		t.Error("BOM not restored on serialization")
	}
}
