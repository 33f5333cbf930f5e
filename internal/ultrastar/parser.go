package ultrastar

import (
	"os"
	"strconv"
	"strings"
)

const utf8BOM = "\xef\xbb\xbf"

// ParseFile reads and parses an UltraStar file from disk.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses the raw bytes of an UltraStar file.
func Parse(data []byte) (*Document, error) {
	doc := &Document{}

	text := string(data)
	if strings.HasPrefix(text, utf8BOM) {
		doc.bom = true
		text = strings.TrimPrefix(text, utf8BOM)
	}

	lineNo := 0
	for len(text) > 0 || lineNo == 0 {
		lineNo++
		content, term, rest := nextLine(text)
		text = rest

		line, err := parseLine(content, lineNo)
		if err != nil {
			return nil, err
		}
		line.term = term
		doc.Lines = append(doc.Lines, line)

		if rest == "" {
			break
		}
	}

	return doc, nil
}

// nextLine splits off the first line of text, returning the line content,
// its terminator ("\n", "\r\n" or "" at EOF) and the remainder.
func nextLine(text string) (content, term, rest string) {
	idx := strings.IndexByte(text, '\n')
	if idx < 0 {
		return text, "", ""
	}
	content = text[:idx]
	term = "\n"
	if strings.HasSuffix(content, "\r") {
		content = content[:len(content)-1]
		term = "\r\n"
	}
	return content, term, text[idx+1:]
}

func parseLine(content string, lineNo int) (Line, error) {
	if strings.TrimSpace(content) == "" {
		return Line{Kind: KindBlank, raw: content}, nil
	}

	switch content[0] {
	case '#':
		return parseHeader(content, lineNo)
	case NoteNormal, NoteGolden, NoteFreestyle, NoteRap, NoteRapGolden:
		return parseNote(content, lineNo)
	case '-':
		return parsePhraseBreak(content, lineNo)
	case 'E':
		return Line{Kind: KindEnd, raw: content}, nil
	}

	return Line{}, &FormatError{Line: lineNo, Text: content, Reason: "unrecognized line shape"}
}

func parseHeader(content string, lineNo int) (Line, error) {
	idx := strings.IndexByte(content, ':')
	if idx < 0 {
		return Line{}, &FormatError{Line: lineNo, Text: content, Reason: "header line without ':'"}
	}
	return Line{
		Kind:  KindHeader,
		Tag:   content[1:idx],
		Value: strings.TrimSpace(content[idx+1:]),
		raw:   content,
	}, nil
}

// parseNote parses "<type> <start> <duration> <pitch> <text>". The numeric
// fields must be separated by single spaces; everything after the fourth
// space is syllable text and is preserved verbatim, leading space included
// (a double space marks a word divider in the format).
func parseNote(content string, lineNo int) (Line, error) {
	if len(content) < 2 || content[1] != ' ' {
		return Line{}, &FormatError{Line: lineNo, Text: content, Reason: "malformed note line"}
	}

	rest := content[2:]
	var toks [3]string
	for i := 0; i < 3; i++ {
		tok, tail, ok := strings.Cut(rest, " ")
		if !ok {
			return Line{}, &FormatError{Line: lineNo, Text: content, Reason: "note line with missing fields"}
		}
		toks[i] = tok
		rest = tail
	}

	start, err := strconv.Atoi(toks[0])
	if err != nil {
		return Line{}, &FormatError{Line: lineNo, Text: content, Reason: "invalid note start beat"}
	}
	duration, err := strconv.Atoi(toks[1])
	if err != nil {
		return Line{}, &FormatError{Line: lineNo, Text: content, Reason: "invalid note duration"}
	}
	if duration < 0 {
		return Line{}, &FormatError{Line: lineNo, Text: content, Reason: "negative note duration"}
	}
	pitch, err := strconv.Atoi(toks[2])
	if err != nil {
		return Line{}, &FormatError{Line: lineNo, Text: content, Reason: "invalid note pitch"}
	}

	return Line{
		Kind:     KindNote,
		NoteType: content[0],
		Start:    start,
		Duration: duration,
		Pitch:    pitch,
		Text:     rest,
		startTok: toks[0],
		durTok:   toks[1],
		pitchTok: toks[2],
	}, nil
}

func parsePhraseBreak(content string, lineNo int) (Line, error) {
	fields := strings.Fields(content[1:])
	if len(fields) == 0 {
		return Line{}, &FormatError{Line: lineNo, Text: content, Reason: "phrase break without beat"}
	}
	beat, err := strconv.Atoi(fields[0])
	if err != nil {
		return Line{}, &FormatError{Line: lineNo, Text: content, Reason: "invalid phrase break beat"}
	}
	return Line{Kind: KindPhraseBreak, BreakBeat: beat, raw: content}, nil
}
