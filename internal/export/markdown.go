package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/wxbak/wechat-session/internal"
)

// MarkdownExporter exports transcripts in Markdown format
type MarkdownExporter struct{}

// Export exports a transcript to Markdown format
func (e *MarkdownExporter) Export(t *internal.Transcript, w io.Writer) error {
	kind := "Chat"
	if t.IsGroup {
		kind = "Group chat"
	}
	_, _ = fmt.Fprintf(w, "# %s %s\n\n", kind, t.Talker)
	_, _ = fmt.Fprintf(w, "**Messages:** %d\n\n---\n\n", len(t.Entries))

	for i, entry := range t.Entries {
		_, _ = fmt.Fprintf(w, "**%s** (%s)\n\n", entry.Name, entry.Time)

		if entry.Quote != nil {
			for _, line := range strings.Split(entry.Quote.Content, "\n") {
				_, _ = fmt.Fprintf(w, "> %s\n", line)
			}
			_, _ = fmt.Fprintln(w)
		}

		if entry.Content != "" {
			_, _ = fmt.Fprintf(w, "%s\n\n", entry.Content)
		}

		if i < len(t.Entries)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
