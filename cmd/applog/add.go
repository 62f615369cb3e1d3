// Add command for the applog CLI.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/victord03/applog/pkg/types"
)

var (
	addCompany     string
	addTitle       string
	addURL         string
	addLocation    string
	addStatus      string
	addDate        string
	addSalary      string
	addDescription string
	addNote        string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new job application",
	Long: `Add records a new job application.

Company and title are required. The status defaults to Applied and the
application date to today when not provided.

Example:
  applog add --company "Imerys" --title "Project Manager"
  applog add --company "Acme" --title "Backend Engineer" --url https://acme.example/jobs/1
  applog add --company "Globex" --title "SRE" --date 2025-02-14 --note "Referred by Dana"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(addCompany) == "" || strings.TrimSpace(addTitle) == "" {
			fmt.Fprintln(os.Stderr, "add: --company and --title are required")
			os.Exit(exitUserError)
		}

		data := map[string]any{
			"company_name": addCompany,
			"job_title":    addTitle,
		}
		if addURL != "" {
			data["job_url"] = addURL
		}
		if addLocation != "" {
			data["location"] = addLocation
		}
		if addStatus != "" {
			data["status"] = addStatus
		}
		if addDate != "" {
			data["application_date"] = addDate
		}
		if addSalary != "" {
			data["salary_range"] = addSalary
		}
		if addDescription != "" {
			data["description"] = addDescription
		}
		if addNote != "" {
			data["notes"] = addNote
		}

		app, err := openApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, "add:", err)
			os.Exit(exitSysError)
		}
		defer app.Close()

		job, err := app.Jobs.Create(cmd.Context(), data)
		if err != nil {
			if errors.Is(err, types.ErrInvalidStatus) {
				fmt.Fprintf(os.Stderr, "invalid status %q (valid: %s)\n", addStatus, validStatusesStr)
				os.Exit(exitUserError)
			}
			if isUserError(err) {
				fmt.Fprintln(os.Stderr, "add:", err)
				os.Exit(exitUserError)
			}
			fmt.Fprintln(os.Stderr, "add:", err)
			os.Exit(exitSysError)
		}

		if flagJSON {
			out, err := json.MarshalIndent(job, "", "  ")
			if err != nil {
				fmt.Fprintln(os.Stderr, "marshal JSON:", err)
				os.Exit(exitSysError)
			}
			fmt.Println(string(out))
		} else {
			fmt.Printf("Added %d: %s at %s\n", job.ID, job.JobTitle, job.CompanyName)
		}

		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addCompany, "company", "", "company name (required)")
	addCmd.Flags().StringVar(&addTitle, "title", "", "job title (required)")
	addCmd.Flags().StringVar(&addURL, "url", "", "job posting URL")
	addCmd.Flags().StringVar(&addLocation, "location", "", "job location")
	addCmd.Flags().StringVar(&addStatus, "status", "", "application status (default: Applied)")
	addCmd.Flags().StringVar(&addDate, "date", "", "application date (YYYY-MM-DD)")
	addCmd.Flags().StringVar(&addSalary, "salary", "", "salary range")
	addCmd.Flags().StringVar(&addDescription, "description", "", "job description")
	addCmd.Flags().StringVar(&addNote, "note", "", "initial note")

	addCmd.MarkFlagRequired("company")
	addCmd.MarkFlagRequired("title")
}
