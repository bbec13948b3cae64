package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/timesheet/internal/cli/formatter"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/spf13/cobra"
)

func parseEmployeeNumber(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid employee number %q", s)
	}
	return n, nil
}

func newEmployeeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "employee",
		Aliases: []string{"emp"},
		Short:   "Manage employees and their passwords",
	}

	cmd.AddCommand(
		newEmployeeAddCmd(app),
		newEmployeeListCmd(app),
		newEmployeeShowCmd(app),
		newEmployeeEditCmd(app),
		newEmployeeRemoveCmd(app),
		newEmployeePasswdCmd(app),
	)

	return cmd
}

func newEmployeeAddCmd(app *App) *cobra.Command {
	var number int
	var name, userName, password string
	var admin bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an employee with login credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := readPassword(app, password)
			if err != nil {
				return err
			}

			e := &domain.Employee{
				Number:   number,
				Name:     name,
				UserName: userName,
				IsAdmin:  admin,
			}
			if err := app.Employees.Create(cmd.Context(), e, pw); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created employee %s [%d] as %s\n", e.Name, e.Number, e.UserName)
			return nil
		},
	}

	cmd.Flags().IntVar(&number, "number", 0, "Employee number")
	cmd.Flags().StringVar(&name, "name", "", "Full name")
	cmd.Flags().StringVar(&userName, "user", "", "Login user name")
	cmd.Flags().BoolVar(&admin, "admin", false, "Grant administrator rights")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted on a terminal)")
	_ = cmd.MarkFlagRequired("number")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func newEmployeeListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List employees",
		RunE: func(cmd *cobra.Command, args []string) error {
			employees, err := app.Employees.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(employees) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No employees found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEmployeeList(employees))
			return nil
		},
	}
}

func newEmployeeShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <number>",
		Short: "Show one employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseEmployeeNumber(args[0])
			if err != nil {
				return err
			}
			e, err := app.Employees.Get(cmd.Context(), number)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatEmployee(e))
			return nil
		},
	}
}

func newEmployeeEditCmd(app *App) *cobra.Command {
	var name, userName string
	var admin bool

	cmd := &cobra.Command{
		Use:   "edit <number>",
		Short: "Change an employee's name, user name or role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseEmployeeNumber(args[0])
			if err != nil {
				return err
			}
			e, err := app.Employees.Get(cmd.Context(), number)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				e.Name = name
			}
			if cmd.Flags().Changed("user") {
				e.UserName = userName
			}
			if cmd.Flags().Changed("admin") {
				e.IsAdmin = admin
			}
			if err := app.Employees.Update(cmd.Context(), e); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated employee %s [%d]\n", e.Name, e.Number)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New full name")
	cmd.Flags().StringVar(&userName, "user", "", "New login user name")
	cmd.Flags().BoolVar(&admin, "admin", false, "Administrator rights")

	return cmd
}

func newEmployeeRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove <number>",
		Short: "Delete an employee with their credentials and timesheets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseEmployeeNumber(args[0])
			if err != nil {
				return err
			}
			e, err := app.Employees.Get(cmd.Context(), number)
			if err != nil {
				return err
			}

			ok, err := confirm(app, force, fmt.Sprintf("Delete %s and all of their timesheets?", e.Name))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}

			if err := app.Employees.Delete(cmd.Context(), number); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed employee %s [%d]\n", e.Name, e.Number)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")

	return cmd
}

func newEmployeePasswdCmd(app *App) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "passwd <number>",
		Short: "Set an employee's password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseEmployeeNumber(args[0])
			if err != nil {
				return err
			}
			pw, err := readPassword(app, password)
			if err != nil {
				return err
			}
			if err := app.Employees.ChangePassword(cmd.Context(), number, pw); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Password changed for employee %d\n", number)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "New password (prompted when omitted on a terminal)")

	return cmd
}
