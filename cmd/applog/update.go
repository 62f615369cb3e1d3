// Update command for the applog CLI.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/victord03/applog/pkg/types"
)

var (
	updateCompany     string
	updateTitle       string
	updateURL         string
	updateLocation    string
	updateStatus      string
	updateDate        string
	updateSalary      string
	updateDescription string
)

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of a job application",
	Long: `Update changes the provided fields and leaves the rest untouched.

Passing a flag with an empty value clears that field.

Example:
  applog update 3 --status Interview
  applog update 3 --salary "CHF 70k - 78k" --location Zurich
  applog update 3 --url ""`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, "update:", err)
			os.Exit(exitUserError)
		}

		data := make(map[string]any)
		if cmd.Flags().Changed("company") {
			data["company_name"] = updateCompany
		}
		if cmd.Flags().Changed("title") {
			data["job_title"] = updateTitle
		}
		if cmd.Flags().Changed("url") {
			data["job_url"] = updateURL
		}
		if cmd.Flags().Changed("location") {
			data["location"] = updateLocation
		}
		if cmd.Flags().Changed("status") {
			data["status"] = updateStatus
		}
		if cmd.Flags().Changed("date") {
			data["application_date"] = updateDate
		}
		if cmd.Flags().Changed("salary") {
			data["salary_range"] = updateSalary
		}
		if cmd.Flags().Changed("description") {
			data["description"] = updateDescription
		}

		if len(data) == 0 {
			fmt.Fprintln(os.Stderr, "update: at least one field flag must be provided")
			os.Exit(exitUserError)
		}

		app, err := openApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, "update:", err)
			os.Exit(exitSysError)
		}
		defer app.Close()

		job, err := app.Jobs.Update(cmd.Context(), id, data)
		if err != nil {
			if errors.Is(err, types.ErrInvalidStatus) {
				fmt.Fprintf(os.Stderr, "invalid status %q (valid: %s)\n", updateStatus, validStatusesStr)
				os.Exit(exitUserError)
			}
			if isUserError(err) {
				fmt.Fprintln(os.Stderr, "update:", err)
				os.Exit(exitUserError)
			}
			fmt.Fprintln(os.Stderr, "update:", err)
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
			fmt.Printf("Updated %d\n", id)
		}

		return nil
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateCompany, "company", "", "set company name")
	updateCmd.Flags().StringVar(&updateTitle, "title", "", "set job title")
	updateCmd.Flags().StringVar(&updateURL, "url", "", "set job posting URL")
	updateCmd.Flags().StringVar(&updateLocation, "location", "", "set job location")
	updateCmd.Flags().StringVar(&updateStatus, "status", "", "set application status")
	updateCmd.Flags().StringVar(&updateDate, "date", "", "set application date (YYYY-MM-DD)")
	updateCmd.Flags().StringVar(&updateSalary, "salary", "", "set salary range")
	updateCmd.Flags().StringVar(&updateDescription, "description", "", "set job description")
}
