// Package ultrastar parses and serializes UltraStar Deluxe karaoke text
// files. The parser keeps enough of the original bytes around that an
// unmodified document serializes back byte-for-byte; only note pitches
// may be rewritten.
package ultrastar

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind discriminates the line variants of an UltraStar file.
type Kind int

const (
	// KindHeader is a "#TAG:value" metadata line.
	KindHeader Kind = iota
	// KindNote is a timed syllable: "<type> <start> <duration> <pitch> <text>".
	KindNote
	// KindPhraseBreak is a "- <beat>" phrase separator, optionally with a
	// second beat for the next phrase's start.
	KindPhraseBreak
	// KindEnd is the "E" end-of-song marker.
	KindEnd
	// KindBlank is an empty or whitespace-only line.
	KindBlank
)

// Note types defined by the format.
const (
	NoteNormal    byte = ':'
	NoteGolden    byte = '*'
	NoteFreestyle byte = 'F'
	NoteRap       byte = 'R'
	NoteRapGolden byte = 'G'
)

// Line is one line of an UltraStar file. Only the fields matching Kind are
// meaningful. Non-note lines keep their raw text so serialization is exact.
type Line struct {
	Kind Kind

	// Header fields.
	Tag   string
	Value string

	// Note fields.
	NoteType byte
	Start    int
	Duration int
	Pitch    int
	Text     string // syllable text, verbatim; may begin with a space

	// Phrase break field.
	BreakBeat int

	// Original integer tokens, kept so serialization reproduces "+4" or
	// "04" style spellings untouched.
	startTok string
	durTok   string
	pitchTok string

	raw  string // non-note lines verbatim, without terminator
	term string // "\n", "\r\n", or "" on an unterminated final line
}

// SetPitch overwrites the note's pitch field.
func (l *Line) SetPitch(pitch int) {
	l.Pitch = pitch
	l.pitchTok = strconv.Itoa(pitch)
}

// render returns the line's text without its terminator.
func (l *Line) render() string {
	if l.Kind != KindNote {
		return l.raw
	}
	return string(l.NoteType) + " " + l.startTok + " " + l.durTok + " " + l.pitchTok + " " + l.Text
}

// Document is an ordered sequence of lines plus the byte-order mark state
// of the source file.
type Document struct {
	Lines []Line

	bom bool // source began with a UTF-8 BOM
}

// Notes returns pointers to the note lines in document order.
func (d *Document) Notes() []*Line {
	var notes []*Line
	for i := range d.Lines {
		if d.Lines[i].Kind == KindNote {
			notes = append(notes, &d.Lines[i])
		}
	}
	return notes
}

// Header returns the value of the first header line with the given tag,
// compared case-insensitively.
func (d *Document) Header(tag string) (string, bool) {
	for i := range d.Lines {
		if d.Lines[i].Kind == KindHeader && strings.EqualFold(d.Lines[i].Tag, tag) {
			return d.Lines[i].Value, true
		}
	}
	return "", false
}

// FormatError reports a line that matches none of the recognized shapes,
// or tempo metadata that is missing or invalid.
type FormatError struct {
	Line   int    // 1-based line number, 0 when not line-specific
	Text   string // offending line, if any
	Reason string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("invalid karaoke file: line %d: %s (%q)", e.Line, e.Reason, e.Text)
	}
	return "invalid karaoke file: " + e.Reason
}
