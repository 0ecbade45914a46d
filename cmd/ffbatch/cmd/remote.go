package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/robinrj6/FFmpeg-batch/pkg/models"
	"github.com/spf13/cobra"
)

// profilesCmd represents the profiles command
var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List profiles available on the service",
	Args:  cobra.NoArgs,
	RunE:  runProfiles,
}

// workflowsCmd represents the workflows command
var workflowsCmd = &cobra.Command{
	Use:   "workflows",
	Short: "List workflows available on the service",
	Args:  cobra.NoArgs,
	RunE:  runWorkflows,
}

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show processing statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

// healthCmd represents the health command
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check service health",
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

func init() {
	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(workflowsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(healthCmd)
}

func runProfiles(cmd *cobra.Command, args []string) error {
	profiles, err := newAPIClient().ListProfiles()
	if err != nil {
		return err
	}

	if IsJSONOutput() {
		return printJSON(profiles)
	}

	fmt.Println("\nAvailable Profiles:")
	displayProfiles(profiles)
	return nil
}

func runWorkflows(cmd *cobra.Command, args []string) error {
	workflows, err := newAPIClient().ListWorkflows()
	if err != nil {
		return err
	}

	if IsJSONOutput() {
		return printJSON(workflows)
	}

	fmt.Println("\nAvailable Workflows:")
	displayWorkflows(workflows)
	return nil
}

// displayProfiles renders a profile summary table, shared by the remote
// and local catalog listings
func displayProfiles(profiles []models.ProfileInfo) {
	if len(profiles) == 0 {
		fmt.Println("No profiles found")
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "Operation", "Description")
	for _, p := range profiles {
		table.Append(p.Name, p.Operation, p.Description)
	}
	table.Render()
}

// displayWorkflows renders a workflow summary table
func displayWorkflows(workflows []models.WorkflowInfo) {
	if len(workflows) == 0 {
		fmt.Println("No workflows found")
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "Description", "Jobs")
	for _, w := range workflows {
		table.Append(w.Name, w.Description, fmt.Sprintf("%d", w.Jobs))
	}
	table.Render()
}

func runStats(cmd *cobra.Command, args []string) error {
	stats, err := newAPIClient().GetStats()
	if err != nil {
		return err
	}

	if IsJSONOutput() {
		return printJSON(stats)
	}

	fmt.Println("\nProcessing Statistics:")
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Metric", "Value")
	table.Append("Total Jobs", fmt.Sprintf("%d", stats.Queue.TotalJobs))
	table.Append("Completed", fmt.Sprintf("%d", stats.Queue.CompletedJobs))
	table.Append("Failed", fmt.Sprintf("%d", stats.Queue.FailedJobs))
	table.Append("Processing", fmt.Sprintf("%d", stats.Queue.ProcessingJobs))
	table.Append("Queue Size", fmt.Sprintf("%d", stats.Queue.QueueSize))
	table.Append("Active Workers", fmt.Sprintf("%d", stats.Queue.ActiveWorkers))
	table.Append("Profiles", fmt.Sprintf("%d", stats.Profiles))
	table.Append("Workflows", fmt.Sprintf("%d", stats.Workflows))
	table.Render()
	return nil
}

func runHealth(cmd *cobra.Command, args []string) error {
	health, err := newAPIClient().Health()
	if err != nil {
		return err
	}

	if IsJSONOutput() {
		return printJSON(health)
	}

	fmt.Printf("Service status: %s\n", health.Status)
	fmt.Printf("Active workers: %d, queue size: %d\n",
		health.QueueStats.ActiveWorkers, health.QueueStats.QueueSize)
	return nil
}
