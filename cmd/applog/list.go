// List command for the applog CLI.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/victord03/applog/pkg/types"
	"github.com/victord03/applog/pkg/views"
)

var (
	listSearch   string
	listCompany  string
	listStatus   string
	listLocation string
	listAll      bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List job applications",
	Long: `List displays job applications, newest application date first.

By default the closed statuses (Rejected, Withdrawn, No Response) are
hidden. Pass --all to include them, or --status for one exact status.

Example:
  applog list
  applog list --status Interview
  applog list --search backend --location Berlin
  applog list --all --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if listStatus != "" && listStatus != views.AllStatuses && !types.Status(listStatus).Valid() {
			fmt.Fprintf(os.Stderr, "invalid status %q (valid: %s)\n", listStatus, validStatusesStr)
			os.Exit(exitUserError)
		}

		app, err := openApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, "list:", err)
			os.Exit(exitSysError)
		}
		defer app.Close()

		jobs, err := app.Jobs.List(cmd.Context())
		if err != nil {
			fmt.Fprintln(os.Stderr, "list:", err)
			os.Exit(exitSysError)
		}

		filters := views.JobFilters{
			Search:   listSearch,
			Company:  listCompany,
			Location: listLocation,
		}
		switch {
		case listStatus != "":
			filters.Status = listStatus
		case !listAll:
			filters.Status = views.AllStatuses
		}

		jobs = views.FilterJobs(jobs, filters)

		if flagJSON {
			out, err := json.MarshalIndent(jobs, "", "  ")
			if err != nil {
				fmt.Fprintln(os.Stderr, "marshal JSON:", err)
				os.Exit(exitSysError)
			}
			fmt.Println(string(out))
		} else {
			printJobTable(jobs)
		}

		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listSearch, "search", "", "match company or title by substring")
	listCmd.Flags().StringVar(&listCompany, "company", "", "filter by exact company name")
	listCmd.Flags().StringVar(&listStatus, "status", "", "filter by exact status")
	listCmd.Flags().StringVar(&listLocation, "location", "", "filter by exact location")
	listCmd.Flags().BoolVar(&listAll, "all", false, "include Rejected, Withdrawn, and No Response")
}

// printJobTable prints applications in a human-readable table format.
func printJobTable(jobs []*types.JobApplication) {
	if len(jobs) == 0 {
		fmt.Println("No applications found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCOMPANY\tTITLE\tSTATUS\tAPPLIED\tSALARY")
	fmt.Fprintln(w, "--\t-------\t-----\t------\t-------\t------")

	for _, job := range jobs {
		title := job.JobTitle
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			job.ID,
			job.CompanyName,
			title,
			job.Status,
			views.FormatTime(job.ApplicationDate),
			views.FormatSalary(job.SalaryRange),
		)
	}
	w.Flush()

	fmt.Printf("\nTotal: %d application(s)\n", len(jobs))
}
