package ultrastar

import (
	"os"
	"strings"
)

// Bytes serializes the document. For a freshly parsed document the output
// equals the source bytes exactly; mutated note pitches are the only fields
// that can differ.
func (d *Document) Bytes() []byte {
	var b strings.Builder
	if d.bom {
		b.WriteString(utf8BOM)
	}
	for i := range d.Lines {
		b.WriteString(d.Lines[i].render())
		b.WriteString(d.Lines[i].term)
	}
	return []byte(b.String())
}

// WriteFile serializes the document to path in a single write.
func (d *Document) WriteFile(path string) error {
	return os.WriteFile(path, d.Bytes(), 0644)
}
