package main

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"employee_directory/internal/feature/employee/client"
	"employee_directory/internal/feature/employee/transport/http/dto"
)

func newCreateCmd(a *app) *cobra.Command {
	var in dto.EmployeeRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add an employee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.reportMutation(cmd, a.dir.Create(cmd.Context(), in), "Employee created successfully")
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "full name")
	cmd.Flags().StringVar(&in.Email, "email", "", "email address")
	cmd.Flags().StringVar(&in.Position, "position", "", "job position")
	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	var in dto.EmployeeRequest

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit an employee; omitted fields keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			cur, err := a.api.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			next := dto.EmployeeRequest{Name: cur.Name, Email: cur.Email, Position: cur.Position}
			if cmd.Flags().Changed("name") {
				next.Name = in.Name
			}
			if cmd.Flags().Changed("email") {
				next.Email = in.Email
			}
			if cmd.Flags().Changed("position") {
				next.Position = in.Position
			}
			return a.reportMutation(cmd, a.dir.Update(cmd.Context(), id, next), "Employee updated successfully")
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "full name")
	cmd.Flags().StringVar(&in.Email, "email", "", "email address")
	cmd.Flags().StringVar(&in.Position, "position", "", "job position")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an employee",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			cur, err := a.api.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !yes && !confirm(a, fmt.Sprintf("Are you sure you want to delete %s?", cur.Name)) {
				fmt.Fprintln(a.out, "Aborted.")
				return nil
			}
			return a.reportMutation(cmd, a.dir.Delete(cmd.Context(), id), "Employee deleted successfully")
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// reportMutation prints success and the refreshed table. When the server
// applied the change but the refetch failed, success is still printed and the
// refetch failure is reported as a warning.
func (a *app) reportMutation(cmd *cobra.Command, err error, success string) error {
	var rerr *client.RefreshError
	switch {
	case errors.As(err, &rerr):
		fmt.Fprintln(a.out, success)
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not reload employees: %v\n", rerr.Err)
		return nil
	case err != nil:
		return err
	}
	fmt.Fprintln(a.out, success)
	return renderTable(a.out, a.dir)
}

// confirm asks a yes/no question on a.in; anything but y/yes is no.
func confirm(a *app, question string) bool {
	fmt.Fprintf(a.out, "%s [y/N]: ", question)
	line, _ := bufio.NewReader(a.in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 0)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid employee id %q", s)
	}
	return uint(id), nil
}
