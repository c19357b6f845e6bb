package export

import (
	"io"

	"github.com/wxbak/wechat-session/internal"
	"gopkg.in/yaml.v3"
)

// YAMLExporter exports transcripts as YAML
type YAMLExporter struct{}

// Export exports a transcript to YAML format
func (e *YAMLExporter) Export(t *internal.Transcript, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(t)
}

// Extension returns the file extension for this format
func (e *YAMLExporter) Extension() string {
	return "yaml"
}
