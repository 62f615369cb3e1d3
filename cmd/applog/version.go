// Version command for the applog CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/victord03/applog/pkg/applog"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the applog version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("applog", applog.Version)
	},
}
