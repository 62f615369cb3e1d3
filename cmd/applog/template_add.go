// Template add command for the applog CLI.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	templateAddName    string
	templateAddContent string
)

var templateAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a note template",
	Long: `Add creates a reusable note template.

Example:
  applog template add --name "Follow-up" --content "Sent a follow-up email."`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, "template add:", err)
			os.Exit(exitSysError)
		}
		defer app.Close()

		tpl, err := app.Templates.Create(cmd.Context(), map[string]any{
			"name":    templateAddName,
			"content": templateAddContent,
		})
		if err != nil {
			if isUserError(err) {
				fmt.Fprintln(os.Stderr, "template add:", err)
				os.Exit(exitUserError)
			}
			fmt.Fprintln(os.Stderr, "template add:", err)
			os.Exit(exitSysError)
		}

		if flagJSON {
			out, err := json.MarshalIndent(tpl, "", "  ")
			if err != nil {
				fmt.Fprintln(os.Stderr, "marshal JSON:", err)
				os.Exit(exitSysError)
			}
			fmt.Println(string(out))
		} else {
			fmt.Printf("Added template %d: %s\n", tpl.ID, tpl.Name)
		}

		return nil
	},
}

func init() {
	templateAddCmd.Flags().StringVar(&templateAddName, "name", "", "template name (required)")
	templateAddCmd.Flags().StringVar(&templateAddContent, "content", "", "template content (required)")

	templateAddCmd.MarkFlagRequired("name")
	templateAddCmd.MarkFlagRequired("content")
}
