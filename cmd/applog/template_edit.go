// Template edit command for the applog CLI.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	templateEditName    string
	templateEditContent string
)

var templateEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Update a note template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, "template edit:", err)
			os.Exit(exitUserError)
		}

		data := make(map[string]any)
		if cmd.Flags().Changed("name") {
			data["name"] = templateEditName
		}
		if cmd.Flags().Changed("content") {
			data["content"] = templateEditContent
		}

		if len(data) == 0 {
			fmt.Fprintln(os.Stderr, "template edit: at least one of --name or --content must be provided")
			os.Exit(exitUserError)
		}

		app, err := openApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, "template edit:", err)
			os.Exit(exitSysError)
		}
		defer app.Close()

		tpl, err := app.Templates.Update(cmd.Context(), id, data)
		if err != nil {
			if isUserError(err) {
				fmt.Fprintln(os.Stderr, "template edit:", err)
				os.Exit(exitUserError)
			}
			fmt.Fprintln(os.Stderr, "template edit:", err)
			os.Exit(exitSysError)
		}
		if tpl == nil {
			fmt.Fprintf(os.Stderr, "template %d not found\n", id)
			os.Exit(exitUserError)
		}

		if flagJSON {
			out, err := json.MarshalIndent(tpl, "", "  ")
			if err != nil {
				fmt.Fprintln(os.Stderr, "marshal JSON:", err)
				os.Exit(exitSysError)
			}
			fmt.Println(string(out))
		} else {
			fmt.Printf("Updated template %d\n", id)
		}

		return nil
	},
}

func init() {
	templateEditCmd.Flags().StringVar(&templateEditName, "name", "", "set template name")
	templateEditCmd.Flags().StringVar(&templateEditContent, "content", "", "set template content")
}
