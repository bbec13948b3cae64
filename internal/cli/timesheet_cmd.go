package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/alexanderramin/timesheet/internal/cli/formatter"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/spf13/cobra"
)

func newTimesheetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "timesheet",
		Aliases: []string{"ts", "week"},
		Short:   "Record and review weekly timesheets",
	}

	cmd.AddCommand(
		newTimesheetNewCmd(app),
		newTimesheetListCmd(app),
		newTimesheetShowCmd(app),
		newTimesheetCurrentCmd(app),
		newRowCmd(app),
		newTimesheetAdjustCmd(app, "overtime"),
		newTimesheetAdjustCmd(app, "flextime"),
		newTimesheetSubmitCmd(app),
		newTimesheetReopenCmd(app),
		newTimesheetRemoveCmd(app),
		newTimesheetImportCmd(app),
	)

	return cmd
}

func newTimesheetNewCmd(app *App) *cobra.Command {
	var employee, week, year int
	var weekEnding time.Time
	var overtime, flextime float64

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a timesheet for one week",
		Long: "Start a timesheet for one week. Any date may be given; it is moved to the\n" +
			"Friday ending its Saturday..Friday week. Defaults to the current week.",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := app.Employees.Get(cmd.Context(), employee)
			if err != nil {
				return err
			}

			ts := domain.NewTimesheetFor(e, time.Now())
			switch {
			case cmd.Flags().Changed("week"):
				if year == 0 {
					year = time.Now().Year()
				}
				if err := ts.SetWeekNumber(week, year); err != nil {
					return err
				}
			case !weekEnding.IsZero():
				ts.SetEndDate(weekEnding)
			}
			if err := ts.SetOvertimeHours(overtime); err != nil {
				return err
			}
			if err := ts.SetFlextimeHours(flextime); err != nil {
				return err
			}

			if err := app.Timesheets.Create(cmd.Context(), ts); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created timesheet %d for %s, week ending %s\n", ts.ID, e.Name, formatter.WeekLabel(ts))
			return nil
		},
	}

	cmd.Flags().IntVar(&employee, "employee", 0, "Employee number")
	addWeekEndingFlag(cmd.Flags(), &weekEnding)
	cmd.Flags().IntVar(&week, "week", 0, "Week number (weeks start on Saturday)")
	cmd.Flags().IntVar(&year, "year", 0, "Year for --week (default this year)")
	cmd.Flags().Float64Var(&overtime, "overtime", 0, "Overtime hours")
	cmd.Flags().Float64Var(&flextime, "flextime", 0, "Flextime hours")
	cmd.MarkFlagsMutuallyExclusive("week", "week-ending")
	_ = cmd.MarkFlagRequired("employee")

	return cmd
}

func newTimesheetListCmd(app *App) *cobra.Command {
	var employee int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List timesheets, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			var sheets []*domain.Timesheet
			var err error
			if employee > 0 {
				sheets, err = app.Timesheets.ListByEmployee(cmd.Context(), employee)
			} else {
				sheets, err = app.Timesheets.List(cmd.Context())
			}
			if err != nil {
				return err
			}
			if len(sheets) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No timesheets found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTimesheetList(sheets))
			return nil
		},
	}

	cmd.Flags().IntVar(&employee, "employee", 0, "Only this employee's timesheets")

	return cmd
}

func newTimesheetShowCmd(app *App) *cobra.Command {
	var employee int
	var weekEnding time.Time

	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show a timesheet by ID or by --employee and --week-ending",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var ts *domain.Timesheet
			switch {
			case len(args) == 1:
				id, err := parseTimesheetID(args[0])
				if err != nil {
					return err
				}
				if ts, err = app.Timesheets.Get(cmd.Context(), id); err != nil {
					return err
				}
			case employee > 0 && !weekEnding.IsZero():
				var err error
				if ts, err = app.Timesheets.FindByWeek(cmd.Context(), employee, weekEnding); err != nil {
					return err
				}
			default:
				return fmt.Errorf("give a timesheet ID or both --employee and --week-ending")
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTimesheet(ts))
			return nil
		},
	}

	cmd.Flags().IntVar(&employee, "employee", 0, "Employee number")
	addWeekEndingFlag(cmd.Flags(), &weekEnding)

	return cmd
}

func newTimesheetCurrentCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "current <employee>",
		Short: "Show the employee's latest timesheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseEmployeeNumber(args[0])
			if err != nil {
				return err
			}
			ts, err := app.Timesheets.Current(cmd.Context(), number)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTimesheet(ts))
			return nil
		},
	}
}

// newTimesheetAdjustCmd builds "overtime" and "flextime", which differ only
// in the setter they call.
func newTimesheetAdjustCmd(app *App, kind string) *cobra.Command {
	return &cobra.Command{
		Use:   kind + " <id> <hours>",
		Short: "Set the " + kind + " hours of a timesheet",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTimesheetID(args[0])
			if err != nil {
				return err
			}
			hours, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid hours %q", args[1])
			}

			ts, err := app.Timesheets.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			set := ts.SetOvertimeHours
			if kind == "flextime" {
				set = ts.SetFlextimeHours
			}
			if err := set(hours); err != nil {
				return err
			}
			if err := app.Timesheets.Update(cmd.Context(), ts); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Timesheet %d: %s  %s\n", ts.ID, formatter.FormatAdjustment(ts), formatter.ValidityBadge(ts.IsValid()))
			return nil
		},
	}
}

func newTimesheetSubmitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "submit <id>",
		Short: "Hand in a balanced timesheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTimesheetID(args[0])
			if err != nil {
				return err
			}
			ts, err := app.Timesheets.Submit(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Submitted timesheet %d, week ending %s\n", ts.ID, ts.WeekEnding())
			return nil
		},
	}
}

func newTimesheetReopenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reopen <id>",
		Short: "Return a submitted timesheet to draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTimesheetID(args[0])
			if err != nil {
				return err
			}
			ts, err := app.Timesheets.Reopen(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reopened timesheet %d, week ending %s\n", ts.ID, ts.WeekEnding())
			return nil
		},
	}
}

func newTimesheetRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a timesheet and its rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTimesheetID(args[0])
			if err != nil {
				return err
			}
			ts, err := app.Timesheets.Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			ok, err := confirm(app, force, fmt.Sprintf("Delete timesheet %d (week ending %s)?", ts.ID, ts.WeekEnding()))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}

			if err := app.Timesheets.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed timesheet %d\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")

	return cmd
}

func newTimesheetImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Create timesheets from a YAML or JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.ImportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d timesheets for %s [%d]\n",
				len(result.Timesheets), result.Employee.Name, result.Employee.Number)
			if len(result.Timesheets) > 0 {
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTimesheetList(result.Timesheets))
			}
			return nil
		},
	}
}
