// Note command for the applog CLI.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var noteTemplateID int64

var noteCmd = &cobra.Command{
	Use:   "note <id> [text]",
	Short: "Add a timestamped note to a job application",
	Long: `Note appends an entry to the application's note history. The text
comes from the positional argument or, with --template, from a saved
note template.

Example:
  applog note 3 "Phone screen went well"
  applog note 3 --template 1`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, "note:", err)
			os.Exit(exitUserError)
		}

		var text string
		if len(args) == 2 {
			text = args[1]
		}
		if noteTemplateID > 0 && text != "" {
			fmt.Fprintln(os.Stderr, "note: pass either text or --template, not both")
			os.Exit(exitUserError)
		}

		app, err := openApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, "note:", err)
			os.Exit(exitSysError)
		}
		defer app.Close()

		if noteTemplateID > 0 {
			tpl, err := app.Templates.GetByID(cmd.Context(), noteTemplateID)
			if err != nil {
				fmt.Fprintln(os.Stderr, "get template:", err)
				os.Exit(exitSysError)
			}
			if tpl == nil {
				fmt.Fprintf(os.Stderr, "template %d not found\n", noteTemplateID)
				os.Exit(exitUserError)
			}
			text = tpl.Content
		}

		if strings.TrimSpace(text) == "" {
			fmt.Fprintln(os.Stderr, "note: text must not be blank")
			os.Exit(exitUserError)
		}

		job, err := app.Jobs.AddNote(cmd.Context(), id, text)
		if err != nil {
			fmt.Fprintln(os.Stderr, "add note:", err)
			os.Exit(exitSysError)
		}
		if job == nil {
			fmt.Fprintf(os.Stderr, "application %d not found\n", id)
			os.Exit(exitUserError)
		}

		if flagJSON {
			out, err := json.MarshalIndent(job, "", "  ")
			if err != nil {
				fmt.Fprintln(os.Stderr, "marshal JSON:", err)
				os.Exit(exitSysError)
			}
			fmt.Println(string(out))
		} else {
			fmt.Printf("Added note to %d\n", id)
		}

		return nil
	},
}

func init() {
	noteCmd.Flags().Int64Var(&noteTemplateID, "template", 0, "insert the content of a saved template by id")
}
