package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/celestiaorg/cadence/internal/db/models"
	"github.com/celestiaorg/cadence/internal/schedule"
	"github.com/celestiaorg/cadence/internal/types"
	"github.com/celestiaorg/cadence/pkg/api/v1/client"
)

// schedule flag names
const (
	flagID          = "id"
	flagName        = "name"
	flagType        = "type"
	flagCommand     = "command"
	flagTrigger     = "trigger"
	flagDesc        = "desc"
	flagActive      = "active"
	flagStatus      = "status"
	flagOrder       = "order"
	flagPage        = "page"
	flagPageSize    = "page-size"
	flagPermissions = "permissions"
	flagLatest      = "latest"
)

func newSchedulesCmd() *cobra.Command {
	schedulesCmd := &cobra.Command{
		Use:     "schedules",
		Aliases: []string{"schedule", "s"},
		Short:   "Manage scheduled jobs",
		Long:    `Create, inspect, toggle, run and delete scheduled jobs.`,
	}

	schedulesCmd.AddCommand(
		newListSchedulesCmd(),
		newTableCmd(),
		newGetScheduleCmd(),
		newCreateScheduleCmd(),
		newUpdateScheduleCmd(),
		newSetActiveCmd("activate", true),
		newSetActiveCmd("deactivate", false),
		newDeleteScheduleCmd(),
		newRunScheduleCmd(),
		newHistoryCmd(),
	)
	return schedulesCmd
}

// addFilterFlags registers the filter flags shared by list and table
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String(flagStatus, "", "Status filter: inactive, active, pending or a run status code")
	cmd.Flags().String(flagName, "", "Case-insensitive name substring")
	cmd.Flags().String(flagType, "", "Case-insensitive type substring")
}

// criteriaFromFlags reads the filter flags into schedule criteria
func criteriaFromFlags(cmd *cobra.Command) (schedule.Criteria, error) {
	statusStr, _ := cmd.Flags().GetString(flagStatus)
	name, _ := cmd.Flags().GetString(flagName)
	typ, _ := cmd.Flags().GetString(flagType)

	status, err := schedule.ParseStatusFilter(statusStr)
	if err != nil {
		return schedule.Criteria{}, err
	}
	return schedule.Criteria{Status: status, Name: name, Type: typ}, nil
}

// mutationOutput is printed by the commands that change a schedule's state
type mutationOutput struct {
	Result    interface{}       `json:"result"`
	Schedules []schedule.Record `json:"schedules"`
}

// printWithRefresh re-fetches the whole schedule list after a successful mutation
// and prints it together with the mutation result
func printWithRefresh(cmd *cobra.Command, result interface{}) error {
	resp, err := apiClient.ListSchedules(context.Background(), schedule.Criteria{})
	if err != nil {
		return fmt.Errorf("failed to refresh schedules: %w", err)
	}
	return printJSON(cmd.OutOrStdout(), mutationOutput{Result: result, Schedules: resp.Rows})
}

// addIDFlag registers the required schedule id flag
func addIDFlag(cmd *cobra.Command) {
	cmd.Flags().Uint(flagID, 0, "Schedule ID")
	_ = cmd.MarkFlagRequired(flagID)
}

func newListSchedulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List schedules",
		Long:  `List every schedule that matches the given filters, in creation order.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			criteria, err := criteriaFromFlags(cmd)
			if err != nil {
				return err
			}

			resp, err := apiClient.ListSchedules(context.Background(), criteria)
			if err != nil {
				return fmt.Errorf("failed to list schedules: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	addFilterFlags(cmd)
	return cmd
}

func newTableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Show a page of the schedule table",
		Long: `Show a page of the schedule table with status tags and the actions
available under the given permissions.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			criteria, err := criteriaFromFlags(cmd)
			if err != nil {
				return err
			}
			orderStr, _ := cmd.Flags().GetString(flagOrder)
			page, _ := cmd.Flags().GetInt(flagPage)
			pageSize, _ := cmd.Flags().GetInt(flagPageSize)
			perms, _ := cmd.Flags().GetString(flagPermissions)

			order := schedule.ParseOrder(orderStr)
			if orderStr != "" && order == schedule.OrderNone {
				return fmt.Errorf("invalid order %q: use asc or desc", orderStr)
			}

			resp, err := apiClient.GetScheduleTable(context.Background(), client.TableOptions{
				Criteria:    criteria,
				Order:       order,
				Page:        page,
				PageSize:    pageSize,
				Permissions: perms,
			})
			if err != nil {
				return fmt.Errorf("failed to get schedule table: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	addFilterFlags(cmd)
	cmd.Flags().String(flagOrder, "", "Sort by latest run time: asc or desc")
	cmd.Flags().Int(flagPage, 1, "Page number")
	cmd.Flags().Int(flagPageSize, types.DefaultPageSize, "Rows per page (10, 20, 50 or 100)")
	cmd.Flags().String(flagPermissions, "", "Comma separated permission codes, all permissions when empty")
	return cmd
}

func newGetScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Get a schedule",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, _ := cmd.Flags().GetUint(flagID)

			s, err := apiClient.GetSchedule(context.Background(), id)
			if err != nil {
				return fmt.Errorf("failed to get schedule: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), s)
		},
	}
	addIDFlag(cmd)
	return cmd
}

func newCreateScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a schedule",
		Long:  `Create a schedule. It stays inactive unless --active is given.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := types.ScheduleRequest{}
			req.Name, _ = cmd.Flags().GetString(flagName)
			req.Type, _ = cmd.Flags().GetString(flagType)
			req.Command, _ = cmd.Flags().GetString(flagCommand)
			req.Trigger, _ = cmd.Flags().GetString(flagTrigger)
			req.Desc, _ = cmd.Flags().GetString(flagDesc)
			if cmd.Flags().Changed(flagActive) {
				active, _ := cmd.Flags().GetBool(flagActive)
				req.IsActive = &active
			}

			if err := req.Validate(); err != nil {
				return fmt.Errorf("invalid schedule: %w", err)
			}

			s, err := apiClient.CreateSchedule(context.Background(), req)
			if err != nil {
				return fmt.Errorf("failed to create schedule: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), s)
		},
	}
	cmd.Flags().String(flagName, "", "Schedule name")
	cmd.Flags().String(flagType, string(models.ScheduleTypeCommand), "Schedule type: command or http")
	cmd.Flags().String(flagCommand, "", "Shell command or URL to run")
	cmd.Flags().String(flagTrigger, "", "Cron expression, e.g. \"*/5 * * * *\"")
	cmd.Flags().String(flagDesc, "", "Description")
	cmd.Flags().Bool(flagActive, false, "Activate the schedule right away")
	_ = cmd.MarkFlagRequired(flagName)
	_ = cmd.MarkFlagRequired(flagCommand)
	_ = cmd.MarkFlagRequired(flagTrigger)
	return cmd
}

func newUpdateScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a schedule",
		Long:  `Update a schedule. Fields without a flag keep their current value.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := context.Background()
			id, _ := cmd.Flags().GetUint(flagID)

			current, err := apiClient.GetSchedule(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to get schedule: %w", err)
			}

			req := types.ScheduleRequest{
				Name:    current.Name,
				Type:    string(current.Type),
				Command: current.Command,
				Trigger: current.Trigger,
				Desc:    current.Desc,
			}
			flags := cmd.Flags()
			if flags.Changed(flagName) {
				req.Name, _ = flags.GetString(flagName)
			}
			if flags.Changed(flagType) {
				req.Type, _ = flags.GetString(flagType)
			}
			if flags.Changed(flagCommand) {
				req.Command, _ = flags.GetString(flagCommand)
			}
			if flags.Changed(flagTrigger) {
				req.Trigger, _ = flags.GetString(flagTrigger)
			}
			if flags.Changed(flagDesc) {
				req.Desc, _ = flags.GetString(flagDesc)
			}
			if flags.Changed(flagActive) {
				active, _ := flags.GetBool(flagActive)
				req.IsActive = &active
			}

			if err := req.Validate(); err != nil {
				return fmt.Errorf("invalid schedule: %w", err)
			}

			s, err := apiClient.UpdateSchedule(ctx, id, req)
			if err != nil {
				return fmt.Errorf("failed to update schedule: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), s)
		},
	}
	addIDFlag(cmd)
	cmd.Flags().String(flagName, "", "Schedule name")
	cmd.Flags().String(flagType, "", "Schedule type: command or http")
	cmd.Flags().String(flagCommand, "", "Shell command or URL to run")
	cmd.Flags().String(flagTrigger, "", "Cron expression")
	cmd.Flags().String(flagDesc, "", "Description")
	cmd.Flags().Bool(flagActive, false, "Whether the schedule is active")
	return cmd
}

func newSetActiveCmd(use string, active bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: fmt.Sprintf("%s a schedule", types.ToggleLabel(!active)),
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, _ := cmd.Flags().GetUint(flagID)

			resp, err := apiClient.SetScheduleActive(context.Background(), id, active)
			if err != nil {
				return fmt.Errorf("failed to %s schedule: %w", use, err)
			}
			return printWithRefresh(cmd, resp)
		},
	}
	addIDFlag(cmd)
	return cmd
}

type deleteResult struct {
	ID      uint `json:"id"`
	Deleted bool `json:"deleted"`
}

func newDeleteScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a schedule and its run history",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, _ := cmd.Flags().GetUint(flagID)

			if err := apiClient.DeleteSchedule(context.Background(), id); err != nil {
				return fmt.Errorf("failed to delete schedule: %w", err)
			}
			return printWithRefresh(cmd, deleteResult{ID: id, Deleted: true})
		},
	}
	addIDFlag(cmd)
	return cmd
}

func newRunScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a schedule once",
		Long:  `Run a schedule once and print the result. Manual runs are not recorded in the history.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, _ := cmd.Flags().GetUint(flagID)

			result, err := apiClient.RunSchedule(context.Background(), id)
			if err != nil {
				return fmt.Errorf("failed to run schedule: %w", err)
			}
			return printWithRefresh(cmd, result)
		},
	}
	addIDFlag(cmd)
	return cmd
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the scheduled run history of a schedule",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := context.Background()
			id, _ := cmd.Flags().GetUint(flagID)
			latest, _ := cmd.Flags().GetBool(flagLatest)

			if latest {
				result, err := apiClient.GetLatestRun(ctx, id)
				if err != nil {
					return fmt.Errorf("failed to get latest run: %w", err)
				}
				return printJSON(cmd.OutOrStdout(), result)
			}

			page, _ := cmd.Flags().GetInt(flagPage)
			resp, err := apiClient.GetScheduleHistory(ctx, id, page)
			if err != nil {
				return fmt.Errorf("failed to get history: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	addIDFlag(cmd)
	cmd.Flags().Int(flagPage, 1, "Page number")
	cmd.Flags().Bool(flagLatest, false, "Only show the latest run")
	return cmd
}
