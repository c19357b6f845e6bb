package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/wxbak/wechat-session/internal"
	"github.com/wxbak/wechat-session/internal/export"
)

var (
	format    string
	outPath   string
	isGroup   bool
	limit     int
	fromDate  string
	toDate    string
	selfName  string
	peerName  string
	selfID    string
	talkerTag string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a chat log to a transcript file",
	Long: `Export messages from MSG.db to a transcript file (txt, md, json, yaml).

Contact names come from the MicroMsg.db next to the message database when it
can be found; senders without a contact entry are rendered under a stable
pseudonym so the transcript stays readable without leaking raw account ids.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if dbPath == "" {
			return fmt.Errorf("--db is required (path to MSG.db)")
		}

		db, err := internal.OpenDatabase(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()

		exporter, err := export.NewExporter(format)
		if err != nil {
			return err
		}

		var (
			records  []internal.MessageRecord
			contacts map[string]internal.Contact
		)

		ctx := context.Background()
		steps := []internal.ProgressStep{
			{
				Message: "Reading messages",
				Fn: func() error {
					var readErr error
					records, readErr = internal.QueryMessages(db, internal.QueryOptions{
						Limit:    limit,
						FromDate: fromDate,
						ToDate:   toDate,
					})
					return readErr
				},
			},
			{
				Message: "Loading contacts",
				Fn: func() error {
					contactPath := internal.FindContactDB(dbPath)
					if contactPath == "" {
						internal.LogWarn("MicroMsg.db not found near %s, using pseudonyms only", dbPath)
						return nil
					}
					contactDB, err := internal.OpenDatabase(contactPath)
					if err != nil {
						internal.LogWarn("Opening contact database failed: %v", err)
						return nil
					}
					defer contactDB.Close()
					contacts, err = internal.LoadContacts(contactDB)
					if err != nil {
						internal.LogWarn("Loading contacts failed: %v", err)
					}
					return nil
				},
			},
		}
		if err := internal.ShowProgressWithSteps(ctx, steps); err != nil {
			return err
		}

		internal.LogInfo("Read %d message(s), %d contact(s)", len(records), len(contacts))

		book := internal.NewContactBook(contacts)
		builder := internal.NewTranscriptBuilder(book, internal.BuildOptions{
			IsGroup:  isGroup,
			SelfName: selfName,
			PeerName: peerName,
			SelfID:   selfID,
		})
		transcript := builder.Build(talkerTag, records)

		target := outPath
		if target == "" {
			target = "chat_records." + exporter.Extension()
		}
		if dir := filepath.Dir(target); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		file, err := os.Create(target)
		if err != nil {
			return &internal.ExportError{Format: format, Path: target, Err: err}
		}
		if err := exporter.Export(transcript, file); err != nil {
			_ = file.Close()
			return &internal.ExportError{Format: format, Path: target, Err: err}
		}
		if err := file.Close(); err != nil {
			return &internal.ExportError{Format: format, Path: target, Err: err}
		}

		internal.PrintSuccess(fmt.Sprintf("Exported %d message(s) to %s", len(transcript.Entries), target))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&format, "format", "f", "txt", "Export format (txt, md, json, yaml)")
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default chat_records.<ext>)")
	exportCmd.Flags().BoolVar(&isGroup, "group", false, "Treat the chat as a group chat")
	exportCmd.Flags().IntVar(&limit, "limit", 0, "Limit the number of exported messages (0 = all)")
	exportCmd.Flags().StringVar(&fromDate, "from-date", "", "Start date (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&toDate, "to-date", "", "End date (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&selfName, "self-name", "我", "Name rendered for self-authored messages")
	exportCmd.Flags().StringVar(&peerName, "peer-name", "对方", "Fallback name for an unmapped private-chat peer")
	exportCmd.Flags().StringVar(&selfID, "self-id", "", "The local account id (never pseudonymized)")
	exportCmd.Flags().StringVar(&talkerTag, "talker", "", "Label for the chat in the transcript header")
}
