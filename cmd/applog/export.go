// Export command for the applog CLI.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write the full tracker state to a JSONL snapshot",
	Long: `Export writes every application and template to a JSONL snapshot
file, one record per line, preceded by a manifest line.

Example:
  applog export backup.jsonl`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, "export:", err)
			os.Exit(exitSysError)
		}
		defer app.Close()

		stats, err := app.Export(cmd.Context(), args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, "export:", err)
			os.Exit(exitSysError)
		}

		if flagJSON {
			out, err := json.MarshalIndent(stats, "", "  ")
			if err != nil {
				fmt.Fprintln(os.Stderr, "marshal JSON:", err)
				os.Exit(exitSysError)
			}
			fmt.Println(string(out))
		} else {
			fmt.Printf("Exported %d application(s) and %d template(s) to %s\n",
				stats.Jobs, stats.Templates, args[0])
		}

		return nil
	},
}
