// Import command for the applog CLI.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Merge a JSONL snapshot into the tracker",
	Long: `Import reads a JSONL snapshot and inserts its applications and
templates. Applications whose URL already exists and templates identical
to a stored one are skipped, so importing the same file twice is safe.

Example:
  applog import backup.jsonl`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, "import:", err)
			os.Exit(exitSysError)
		}
		defer app.Close()

		stats, err := app.Import(cmd.Context(), args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, "import:", err)
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
			fmt.Printf("Imported %d application(s) (%d skipped) and %d template(s) (%d skipped)\n",
				stats.JobsImported, stats.JobsSkipped,
				stats.TemplatesImported, stats.TemplatesSkipped)
		}

		return nil
	},
}
