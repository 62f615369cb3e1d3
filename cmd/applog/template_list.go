// Template list command for the applog CLI.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/victord03/applog/pkg/types"
)

var templateListSearch string

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List note templates",
	Long: `List displays note templates ordered by name.

Use --search to match name or content case-insensitively.

Example:
  applog template list
  applog template list --search follow`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, "template list:", err)
			os.Exit(exitSysError)
		}
		defer app.Close()

		var templates []*types.NoteTemplate
		if templateListSearch != "" {
			templates, err = app.Templates.Search(cmd.Context(), templateListSearch)
		} else {
			templates, err = app.Templates.GetAll(cmd.Context())
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "template list:", err)
			os.Exit(exitSysError)
		}

		if flagJSON {
			out, err := json.MarshalIndent(templates, "", "  ")
			if err != nil {
				fmt.Fprintln(os.Stderr, "marshal JSON:", err)
				os.Exit(exitSysError)
			}
			fmt.Println(string(out))
		} else {
			printTemplateTable(templates)
		}

		return nil
	},
}

func init() {
	templateListCmd.Flags().StringVar(&templateListSearch, "search", "", "match name or content by substring")
}

// printTemplateTable prints templates in a human-readable table format.
func printTemplateTable(templates []*types.NoteTemplate) {
	if len(templates) == 0 {
		fmt.Println("No templates found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCONTENT")
	fmt.Fprintln(w, "--\t----\t-------")

	for _, tpl := range templates {
		content := strings.ReplaceAll(tpl.Content, "\n", " ")
		if len(content) > 60 {
			content = content[:57] + "..."
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", tpl.ID, tpl.Name, content)
	}
	w.Flush()

	fmt.Printf("\nTotal: %d template(s)\n", len(templates))
}
