package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	addProfileParams string
	addProfileDesc   string
)

// catalogCmd groups the local catalog commands
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and edit the local profile catalog",
	Long: `Work with the local catalog file directly, without contacting the
service. The service loads its own copy of the catalog; local edits take
effect there once the file is shared and the service reloads it.`,
}

// catalogProfilesCmd represents the catalog profiles command
var catalogProfilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List profiles in the local catalog",
	Args:  cobra.NoArgs,
	RunE:  runCatalogProfiles,
}

// catalogWorkflowsCmd represents the catalog workflows command
var catalogWorkflowsCmd = &cobra.Command{
	Use:   "workflows",
	Short: "List workflows in the local catalog",
	Args:  cobra.NoArgs,
	RunE:  runCatalogWorkflows,
}

// catalogValidateCmd represents the catalog validate command
var catalogValidateCmd = &cobra.Command{
	Use:   "validate <profile>",
	Short: "Check that a local profile carries its required fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogValidate,
}

// catalogAddProfileCmd represents the catalog add-profile command
var catalogAddProfileCmd = &cobra.Command{
	Use:   "add-profile <name> <operation>",
	Short: "Create or overwrite a profile and save the catalog",
	Args:  cobra.ExactArgs(2),
	RunE:  runCatalogAddProfile,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogProfilesCmd)
	catalogCmd.AddCommand(catalogWorkflowsCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
	catalogCmd.AddCommand(catalogAddProfileCmd)

	catalogAddProfileCmd.Flags().StringVar(&addProfileParams, "params", "{}", "operation parameters as a JSON object")
	catalogAddProfileCmd.Flags().StringVar(&addProfileDesc, "description", "", "profile description")
}

func runCatalogProfiles(cmd *cobra.Command, args []string) error {
	profiles := newCatalog().ListProfiles()

	if IsJSONOutput() {
		return printJSON(profiles)
	}

	fmt.Printf("\nProfiles in %s:\n", GetCatalogPath())
	displayProfiles(profiles)
	return nil
}

func runCatalogWorkflows(cmd *cobra.Command, args []string) error {
	workflows := newCatalog().ListWorkflows()

	if IsJSONOutput() {
		return printJSON(workflows)
	}

	fmt.Printf("\nWorkflows in %s:\n", GetCatalogPath())
	displayWorkflows(workflows)
	return nil
}

func runCatalogValidate(cmd *cobra.Command, args []string) error {
	name := args[0]
	if !newCatalog().ValidateProfile(name) {
		return fmt.Errorf("profile '%s' is missing required fields or does not exist", name)
	}

	fmt.Printf("✓ Profile '%s' is valid\n", name)
	return nil
}

func runCatalogAddProfile(cmd *cobra.Command, args []string) error {
	name, operation := args[0], args[1]

	var params map[string]interface{}
	if err := json.Unmarshal([]byte(addProfileParams), &params); err != nil {
		return fmt.Errorf("invalid --params JSON: %w", err)
	}

	cat := newCatalog()
	if !cat.CreateCustomProfile(name, operation, params, addProfileDesc) {
		return fmt.Errorf("failed to create profile '%s'", name)
	}
	if err := cat.Save(); err != nil {
		return err
	}

	fmt.Printf("✓ Profile '%s' saved to %s\n", name, GetCatalogPath())
	return nil
}
