package cmd

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/wxbak/wechat-session/internal"
)

var contactDBPath string

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)
)

// contactsCmd represents the contacts command
var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "List the resolved contact map",
	Long: `List contacts from MicroMsg.db with the display name the exporter
would use for each (remark over nickname over alias).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := contactDBPath
		if path == "" && dbPath != "" {
			path = internal.FindContactDB(dbPath)
		}
		if path == "" {
			return fmt.Errorf("no contact database: pass --contact-db or a --db it can be derived from")
		}

		db, err := internal.OpenDatabase(path)
		if err != nil {
			return err
		}
		defer db.Close()

		contacts, err := internal.LoadContacts(db)
		if err != nil {
			return err
		}
		if len(contacts) == 0 {
			internal.PrintWarning("No contacts found")
			return nil
		}

		ids := make([]string, 0, len(contacts))
		for id := range contacts {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		fmt.Println(headerStyle.Render(fmt.Sprintf("Contacts (%d)", len(contacts))))
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSOURCE")
		for _, id := range ids {
			c := contacts[id]
			source := "nickname"
			if c.Remark != "" {
				source = "remark"
			} else if c.NickName == "" && c.Alias != "" {
				source = "alias"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", idStyle.Render(id), c.DisplayName(), source)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(contactsCmd)
	contactsCmd.Flags().StringVar(&contactDBPath, "contact-db", "", "Path to MicroMsg.db (default: derived from --db)")
}
