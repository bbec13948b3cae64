package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/timesheet/internal/cli/formatter"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/spf13/cobra"
)

func newRowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "row",
		Short: "Edit the project rows of a timesheet",
	}

	cmd.AddCommand(
		newRowAddCmd(app),
		newRowHoursCmd(app),
		newRowRemoveCmd(app),
	)

	return cmd
}

func newRowAddCmd(app *App) *cobra.Command {
	var project int
	var workPackage, notes string
	var hours []float64

	cmd := &cobra.Command{
		Use:   "add <id>",
		Short: "Append a project row",
		Long: "Append a project row. --hours takes seven comma-separated values,\n" +
			"Saturday first; omit it to start with an empty week.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTimesheetID(args[0])
			if err != nil {
				return err
			}
			if len(hours) == 0 {
				hours = make([]float64, domain.DaysInWeek)
			}
			row, err := domain.NewTimesheetRow(project, workPackage, notes, hours...)
			if err != nil {
				return err
			}

			ts, err := app.Timesheets.AddRows(cmd.Context(), id, row)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDailyGrid(ts))
			return nil
		},
	}

	cmd.Flags().IntVar(&project, "project", 0, "Project ID")
	cmd.Flags().StringVar(&workPackage, "wp", "", "Work package ID")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	cmd.Flags().Float64SliceVar(&hours, "hours", nil, "Seven daily hours, Saturday first")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("wp")

	return cmd
}

func newRowHoursCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "hours <id> <row> <day> <hours>",
		Short: "Set the hours of one day on one row",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTimesheetID(args[0])
			if err != nil {
				return err
			}
			day, err := parseDay(args[2])
			if err != nil {
				return err
			}
			hours, err := strconv.ParseFloat(args[3], 64)
			if err != nil {
				return fmt.Errorf("invalid hours %q", args[3])
			}

			ts, err := app.Timesheets.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			row, err := rowAt(ts, args[1])
			if err != nil {
				return err
			}
			if err := row.SetHour(day, hours); err != nil {
				return err
			}

			ts, err = app.Timesheets.ReplaceRows(cmd.Context(), id, ts.Details)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDailyGrid(ts))
			return nil
		},
	}
}

func newRowRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id> <row>",
		Short: "Delete one row",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTimesheetID(args[0])
			if err != nil {
				return err
			}
			ts, err := app.Timesheets.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			row, err := rowAt(ts, args[1])
			if err != nil {
				return err
			}
			ts.DeleteRow(row)

			ts, err = app.Timesheets.ReplaceRows(cmd.Context(), id, ts.Details)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDailyGrid(ts))
			return nil
		},
	}
}
