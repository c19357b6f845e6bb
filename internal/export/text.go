package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/wxbak/wechat-session/internal"
)

// TextExporter writes the classic plain-text transcript: a name/time line,
// an optional boxed quote block, then the message body.
type TextExporter struct{}

const quoteRule = "─────────────────────────────"

// Export writes a transcript in plain-text format
func (e *TextExporter) Export(t *internal.Transcript, w io.Writer) error {
	for _, entry := range t.Entries {
		if _, err := fmt.Fprintf(w, "%s  (%s)\n", entry.Name, entry.Time); err != nil {
			return err
		}

		if entry.Quote != nil {
			if _, err := fmt.Fprintf(w, "┌%s\n", quoteRule); err != nil {
				return err
			}
			for _, line := range strings.Split(entry.Quote.Content, "\n") {
				if _, err := fmt.Fprintf(w, "│ %s\n", line); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w, "└%s\n", quoteRule); err != nil {
				return err
			}
		}

		if entry.Content != "" {
			if _, err := fmt.Fprintf(w, "%s\n\n", entry.Content); err != nil {
				return err
			}
		} else {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
	}
	return nil
}

// Extension returns the file extension for this format
func (e *TextExporter) Extension() string {
	return "txt"
}
