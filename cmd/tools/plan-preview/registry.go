package main

import (
	"fmt"
	"strconv"

	"thenetwork-workers/pkg/registry"

	cc "thenetwork-workers/internal/workers/compatibility/calculate-compatibility"
	rc "thenetwork-workers/internal/workers/compatibility/rank-connections"
	fap "thenetwork-workers/internal/workers/parties/friends-attending-party"
	gpt "thenetwork-workers/internal/workers/planning/generate-plan-title"
	grp "thenetwork-workers/internal/workers/planning/generate-ready-plan"
	gtw "thenetwork-workers/internal/workers/planning/generate-time-windows"
	luv "thenetwork-workers/internal/workers/venues/lookup-used-venues"
	sv "thenetwork-workers/internal/workers/venues/search-venues"
	slv "thenetwork-workers/internal/workers/venues/select-venue"

	"github.com/spf13/cobra"
)

// taskTypes are the job types the worker manager subscribes to.
var taskTypes = []string{
	cc.TaskType, rc.TaskType,
	sv.TaskType, slv.TaskType, luv.TaskType,
	gtw.TaskType, gpt.TaskType, grp.TaskType,
	fap.TaskType,
}

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Inspect and maintain the activity registry",
}

var registryValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that every worker task type has a valid registry entry",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, _ := cmd.Flags().GetString("path")
		reg, err := registry.LoadRegistry(path)
		if err != nil {
			return fmt.Errorf("load registry: %w", err)
		}
		if err := reg.Validate(taskTypes...); err != nil {
			return fmt.Errorf("registry validation failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "registry valid: %d activities, %d worker task types covered\n",
			len(reg.Activities), len(taskTypes))
		return nil
	},
}

var registrySetCmd = &cobra.Command{
	Use:   "set ID FIELD VALUE",
	Short: "Update one field of an activity",
	Long: `set updates status, version, displayName, description, category, timeout or
retries of the activity with ID and rewrites the registry.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("path")
		reg, err := registry.LoadRegistry(path)
		if err != nil {
			return fmt.Errorf("load registry: %w", err)
		}
		if err := setField(reg, args[0], args[1], args[2]); err != nil {
			return err
		}
		if err := registry.Save(reg, path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "updated %s.%s\n", args[0], args[1])
		return nil
	},
}

func init() {
	registryCmd.PersistentFlags().String("path", "configs/activity-registry.json", "path to the registry file")
	registryCmd.AddCommand(registryValidateCmd, registrySetCmd)
	rootCmd.AddCommand(registryCmd)
}

func setField(reg *registry.ActivityRegistry, id, field, value string) error {
	activity, ok := reg.Find(id)
	if !ok {
		return fmt.Errorf("activity %s not found", id)
	}

	switch field {
	case "status":
		activity.ImplementationStatus = value
	case "version":
		activity.Version = value
	case "displayName":
		activity.DisplayName = value
	case "description":
		activity.Description = value
	case "category":
		activity.Category = value
	case "timeout":
		activity.Timeout = value
	case "retries":
		retries, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid retries value: %w", err)
		}
		activity.Retries = retries
	default:
		return fmt.Errorf("unknown field: %s", field)
	}
	return nil
}
