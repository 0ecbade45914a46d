package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/robinrj6/FFmpeg-batch/pkg/models"
	"github.com/spf13/cobra"
)

var listStatus string

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status <job-id>",
	Short: "Get job status",
	Long:  `Retrieve the current state of a job by its ID.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runStatus,
}

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List jobs",
	Long:  `List all jobs known to the service, optionally filtered by status.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch <job-id>",
	Short: "Watch job progress",
	Long:  `Poll a job every second and re-render its progress until it reaches a terminal status.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

// cancelCmd represents the cancel command
var cancelCmd = &cobra.Command{
	Use:   "cancel <job-id>",
	Short: "Cancel a job",
	Long:  `Ask the service to cancel a queued or processing job.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCancel,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(cancelCmd)

	listCmd.Flags().StringVar(&listStatus, "status", "", "only list jobs with this status")
	watchCmd.Flags().IntVar(&pollRetries, "poll-retries", 0, "retry transient poll errors up to n times (0 = fail fast)")
}

func runStatus(cmd *cobra.Command, args []string) error {
	job, err := newAPIClient().GetJob(args[0])
	if err != nil {
		return err
	}

	if IsJSONOutput() {
		return printJSON(job)
	}

	displayJob(job)
	return nil
}

func displayJob(job *models.Job) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Field", "Value")

	table.Append("ID", job.ID)
	table.Append("Status", string(job.Status))
	table.Append("Operation", job.Operation)
	table.Append("Progress", fmt.Sprintf("%.1f%%", job.Progress))
	table.Append("Input File", job.InputFile)

	if job.OutputFile != "" {
		table.Append("Output File", job.OutputFile)
	}
	if job.CreatedAt != "" {
		table.Append("Created At", job.CreatedAt)
	}
	if job.StartedAt != "" {
		table.Append("Started At", job.StartedAt)
	}
	if job.CompletedAt != "" {
		table.Append("Completed At", job.CompletedAt)
	}
	if job.Error != "" {
		table.Append("Error", job.Error)
	}

	// Display parameters if any
	if len(job.Parameters) > 0 {
		paramsJSON, _ := json.MarshalIndent(job.Parameters, "", "  ")
		table.Append("Parameters", string(paramsJSON))
	}
	if len(job.Result) > 0 {
		resultJSON, _ := json.MarshalIndent(job.Result, "", "  ")
		table.Append("Result", string(resultJSON))
	}

	table.Render()
}

func runList(cmd *cobra.Command, args []string) error {
	jobs, err := newAPIClient().ListJobs(listStatus)
	if err != nil {
		return err
	}

	if IsJSONOutput() {
		return printJSON(jobs)
	}

	if len(jobs) == 0 {
		fmt.Println("No jobs found")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Status", "Operation", "Progress")
	for _, job := range jobs {
		table.Append(job.ID, string(job.Status), job.Operation, fmt.Sprintf("%.1f%%", job.Progress))
	}
	table.Render()

	fmt.Printf("\nTotal jobs: %d\n", len(jobs))
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	return watchJob(newAPIClient(), args[0])
}

func runCancel(cmd *cobra.Command, args []string) error {
	msg, err := newAPIClient().CancelJob(args[0])
	if err != nil {
		return err
	}

	if IsJSONOutput() {
		return printJSON(msg)
	}

	fmt.Printf("✓ %s\n", msg.Message)
	return nil
}
