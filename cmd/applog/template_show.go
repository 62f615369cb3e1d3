// Template show command for the applog CLI.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var templateShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Display a note template with full content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, "template show:", err)
			os.Exit(exitUserError)
		}

		app, err := openApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, "template show:", err)
			os.Exit(exitSysError)
		}
		defer app.Close()

		tpl, err := app.Templates.GetByID(cmd.Context(), id)
		if err != nil {
			fmt.Fprintln(os.Stderr, "get template:", err)
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
			return nil
		}

		fmt.Printf("ID:        %d\n", tpl.ID)
		fmt.Printf("Name:      %s\n", tpl.Name)
		fmt.Printf("Created:   %s\n", tpl.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Printf("Updated:   %s\n", tpl.UpdatedAt.Format("2006-01-02 15:04:05"))
		fmt.Println("\nContent:")
		fmt.Println(tpl.Content)

		return nil
	},
}
