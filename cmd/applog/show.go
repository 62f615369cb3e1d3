// Show command for the applog CLI.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/victord03/applog/pkg/views"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Display a job application with full details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, "show:", err)
			os.Exit(exitUserError)
		}

		app, err := openApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, "show:", err)
			os.Exit(exitSysError)
		}
		defer app.Close()

		job, err := app.Jobs.GetByID(cmd.Context(), id)
		if err != nil {
			fmt.Fprintln(os.Stderr, "get application:", err)
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
			return nil
		}

		fmt.Printf("ID:        %d\n", job.ID)
		fmt.Printf("Company:   %s\n", job.CompanyName)
		fmt.Printf("Title:     %s\n", job.JobTitle)
		if job.JobURL != "" {
			fmt.Printf("URL:       %s\n", job.JobURL)
		}
		if job.Location != "" {
			fmt.Printf("Location:  %s\n", job.Location)
		}
		fmt.Printf("Status:    %s\n", job.Status)
		fmt.Printf("Applied:   %s\n", views.FormatTime(job.ApplicationDate))
		if job.SalaryRange != "" {
			fmt.Printf("Salary:    %s\n", views.FormatSalary(job.SalaryRange))
		}
		fmt.Printf("Created:   %s\n", job.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Printf("Updated:   %s\n", job.UpdatedAt.Format("2006-01-02 15:04:05"))

		if job.Description != "" {
			fmt.Println("\nDescription:")
			fmt.Println(" ", job.Description)
		}

		// Notes read newest first, like a timeline.
		notes := views.NotesNewestFirst(job)
		if len(notes) > 0 {
			fmt.Println("\nNotes:")
			for _, note := range notes {
				fmt.Printf("  [%s] %s\n", views.FormatTimestamp(note.Timestamp), note.Note)
			}
		}

		return nil
	},
}
