// Delete command for the applog CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a job application",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, "delete:", err)
			os.Exit(exitUserError)
		}

		app, err := openApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, "delete:", err)
			os.Exit(exitSysError)
		}
		defer app.Close()

		removed, err := app.Jobs.Delete(cmd.Context(), id)
		if err != nil {
			fmt.Fprintln(os.Stderr, "delete application:", err)
			os.Exit(exitSysError)
		}
		if !removed {
			fmt.Fprintf(os.Stderr, "application %d not found\n", id)
			os.Exit(exitUserError)
		}

		fmt.Printf("Deleted %d\n", id)
		return nil
	},
}
