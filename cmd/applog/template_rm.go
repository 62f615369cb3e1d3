// Template rm command for the applog CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var templateRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a note template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, "template rm:", err)
			os.Exit(exitUserError)
		}

		app, err := openApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, "template rm:", err)
			os.Exit(exitSysError)
		}
		defer app.Close()

		removed, err := app.Templates.Delete(cmd.Context(), id)
		if err != nil {
			fmt.Fprintln(os.Stderr, "delete template:", err)
			os.Exit(exitSysError)
		}
		if !removed {
			fmt.Fprintf(os.Stderr, "template %d not found\n", id)
			os.Exit(exitUserError)
		}

		fmt.Printf("Deleted template %d\n", id)
		return nil
	},
}
