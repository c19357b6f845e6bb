package cmd

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/wxbak/wechat-session/internal"
)

var (
	inspectHex  string
	inspectFile string
	inspectKind string
	inspectSelf bool
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Decode a single blob and show extractor diagnostics",
	Long: `Decode one BytesExtra or CompressContent blob outside of a full export.

The blob is given as hex (--hex, whitespace ignored) or read from a file
(--file). Useful when a new client version shifts the byte patterns: the
output names the signature or fallback stage that matched, so a failing blob
can be compared against the signature table.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		blob, err := inspectInput()
		if err != nil {
			return err
		}

		switch inspectKind {
		case "sender":
			extractor := internal.NewSenderExtractor()
			id, sig, ok := extractor.ExtractDetail(blob, inspectSelf)
			if !ok {
				internal.PrintWarning("No sender id found")
				return nil
			}
			fmt.Printf("sender id: %s\n", id)
			fmt.Printf("signature: %s\n", sig)

		case "quote":
			extractor := internal.NewQuoteExtractor()
			quoted, stage := extractor.Extract(blob)
			if quoted == nil {
				internal.PrintWarning("No quoted message found")
				return nil
			}
			fmt.Printf("content: %s\n", quoted.Content)
			if quoted.SenderID != "" {
				fmt.Printf("quoted sender: %s\n", quoted.SenderID)
			}
			fmt.Printf("stage: %s\n", stage)

		case "text":
			dt := internal.NewDecoder().Decode(blob)
			confidence := "fallback-raw"
			if dt.Validated {
				confidence = "validated"
			}
			fmt.Printf("value: %s\n", dt.Value)
			fmt.Printf("encoding: %s\n", dt.Encoding)
			fmt.Printf("confidence: %s\n", confidence)

		default:
			return fmt.Errorf("unknown kind %q (want sender, quote, or text)", inspectKind)
		}

		return nil
	},
}

// inspectInput reads the blob from --hex or --file.
func inspectInput() ([]byte, error) {
	if inspectHex != "" {
		cleaned := strings.NewReplacer(" ", "", "\n", "", "\t", "").Replace(inspectHex)
		blob, err := hex.DecodeString(cleaned)
		if err != nil {
			return nil, &internal.InputError{Field: "hex", Value: inspectHex, Err: err}
		}
		return blob, nil
	}
	if inspectFile != "" {
		blob, err := os.ReadFile(inspectFile)
		if err != nil {
			return nil, &internal.StorageError{Path: inspectFile, Op: "open", Err: err}
		}
		return blob, nil
	}
	return nil, fmt.Errorf("one of --hex or --file is required")
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVar(&inspectHex, "hex", "", "Blob as a hex string (whitespace ignored)")
	inspectCmd.Flags().StringVar(&inspectFile, "file", "", "Read the blob from a file")
	inspectCmd.Flags().StringVar(&inspectKind, "kind", "sender", "What to decode: sender, quote, or text")
	inspectCmd.Flags().BoolVar(&inspectSelf, "self", false, "Treat the message as self-authored")
}
