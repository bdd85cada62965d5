package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"employee_directory/internal/feature/employee/client"
)

// viewFlags shape the directory view for list and export.
type viewFlags struct {
	search string
	sort   string
	desc   bool
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "case-insensitive filter over name, email and position")
	cmd.Flags().StringVar(&f.sort, "sort", "", "sort key: name, email or position")
	cmd.Flags().BoolVar(&f.desc, "desc", false, "sort Z-A instead of A-Z")
}

func (f *viewFlags) apply(d *client.Directory) error {
	d.SetSearch(f.search)
	if f.sort == "" {
		if f.desc {
			return fmt.Errorf("--desc requires --sort")
		}
		d.ClearSort()
		return nil
	}
	key, err := client.ParseColumn(f.sort)
	if err != nil {
		return err
	}
	dir := client.Asc
	if f.desc {
		dir = client.Desc
	}
	d.SetSort(key, dir)
	return nil
}

func newListCmd(a *app) *cobra.Command {
	var (
		vf      viewFlags
		columns []string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List employees",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := vf.apply(a.dir); err != nil {
				return err
			}
			if len(columns) > 0 {
				cols := make([]client.Column, 0, len(columns))
				for _, c := range columns {
					col, err := client.ParseColumn(c)
					if err != nil {
						return err
					}
					cols = append(cols, col)
				}
				a.dir.SetVisibleColumns(cols)
			}
			if err := a.dir.Refresh(cmd.Context()); err != nil {
				return err
			}
			return renderTable(a.out, a.dir)
		},
	}
	vf.register(cmd)
	cmd.Flags().StringSliceVar(&columns, "columns", nil, "visible columns, e.g. name,position (default all)")
	return cmd
}

// sortHint describes the active sort for the summary line.
func sortHint(s client.Summary) string {
	if s.SortKey == "" {
		return ""
	}
	return fmt.Sprintf(" (sorted by %s %s)", strings.ToLower(s.SortKey.Label()), s.SortLabel)
}
