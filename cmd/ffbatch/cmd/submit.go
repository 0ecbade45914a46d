package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/robinrj6/FFmpeg-batch/pkg/models"
	"github.com/spf13/cobra"
)

var (
	createOutput string
	createParams string

	profileOutput string
)

// createCmd represents the create command
var createCmd = &cobra.Command{
	Use:   "create <input-file> <operation>",
	Short: "Create a processing job and watch it",
	Long: `Submit a raw processing job to the batch processor and watch its
progress until it reaches a terminal status.

Operations: transcode, compress, add_watermark, generate_thumbnail,
extract_audio, create_gif, concatenate_videos, trim_video`,
	Args: cobra.ExactArgs(2),
	RunE: runCreate,
}

// profileCmd represents the profile command
var profileCmd = &cobra.Command{
	Use:   "profile <input-file> <profile>",
	Short: "Create a job from a named profile and watch it",
	Long: `Submit a job whose operation and parameters come from a named profile.
The profile is resolved by the service; a matching entry in the local
catalog is used for display only.`,
	Args: cobra.ExactArgs(2),
	RunE: runProfile,
}

// workflowCmd represents the workflow command
var workflowCmd = &cobra.Command{
	Use:   "workflow <input-file> <workflow>",
	Short: "Create one job per workflow step",
	Long: `Expand a named workflow into one job per step and report the created
job IDs. Workflow jobs are not watched; use the watch command on any of
the reported IDs.`,
	Args: cobra.ExactArgs(2),
	RunE: runWorkflow,
}

func init() {
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(workflowCmd)

	createCmd.Flags().StringVar(&createOutput, "output", "", "output file path (service picks one when omitted)")
	createCmd.Flags().StringVar(&createParams, "params", "{}", "operation parameters as a JSON object")
	createCmd.Flags().IntVar(&pollRetries, "poll-retries", 0, "retry transient poll errors up to n times (0 = fail fast)")

	profileCmd.Flags().StringVar(&profileOutput, "output", "", "output file path (service picks one when omitted)")
	profileCmd.Flags().IntVar(&pollRetries, "poll-retries", 0, "retry transient poll errors up to n times (0 = fail fast)")
}

func runCreate(cmd *cobra.Command, args []string) error {
	inputFile, operation := args[0], args[1]

	var params map[string]interface{}
	if err := json.Unmarshal([]byte(createParams), &params); err != nil {
		return fmt.Errorf("invalid --params JSON: %w", err)
	}

	c := newAPIClient()
	created, err := c.CreateJob(&models.JobRequest{
		InputFile:  inputFile,
		Operation:  operation,
		Parameters: params,
		OutputFile: createOutput,
	})
	if err != nil {
		return err
	}

	if IsJSONOutput() {
		return printJSON(created)
	}

	fmt.Printf("✓ Job created: %s\n", created.JobID)
	return watchJob(c, created.JobID)
}

func runProfile(cmd *cobra.Command, args []string) error {
	inputFile, profileName := args[0], args[1]

	// Local catalog knowledge is advisory; the service resolves the
	// profile authoritatively
	cat := newCatalog()
	if p, ok := cat.GetProfile(profileName); ok {
		if p.Description != "" && !IsJSONOutput() {
			fmt.Printf("Using profile %s: %s\n", profileName, p.Description)
		}
		if !cat.ValidateProfile(profileName) {
			GetLogger().Warn(fmt.Sprintf("Local catalog entry for %q is missing operation or parameters", profileName))
		}
	}

	c := newAPIClient()
	created, err := c.CreateJobFromProfile(&models.ProfileJobRequest{
		InputFile:  inputFile,
		Profile:    profileName,
		OutputFile: profileOutput,
	})
	if err != nil {
		return err
	}

	if IsJSONOutput() {
		return printJSON(created)
	}

	fmt.Printf("✓ Job created from profile '%s': %s\n", profileName, created.JobID)
	return watchJob(c, created.JobID)
}

func runWorkflow(cmd *cobra.Command, args []string) error {
	inputFile, workflowName := args[0], args[1]

	cat := newCatalog()
	if w, ok := cat.GetWorkflow(workflowName); ok && w.Description != "" && !IsJSONOutput() {
		fmt.Printf("Workflow %s: %s (%d steps)\n", workflowName, w.Description, len(w.Jobs))
	}

	c := newAPIClient()
	created, err := c.CreateWorkflowJobs(&models.WorkflowJobRequest{
		InputFile: inputFile,
		Workflow:  workflowName,
	})
	if err != nil {
		return err
	}

	if IsJSONOutput() {
		return printJSON(created)
	}

	fmt.Printf("✓ Created %d jobs from workflow '%s':\n", created.TotalJobs, workflowName)
	for _, ref := range created.Jobs {
		fmt.Printf("  - %s (%s)\n", ref.JobID, ref.Profile)
	}
	return nil
}
