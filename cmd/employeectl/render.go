package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"employee_directory/internal/feature/employee/client"
)

// renderTable prints the summary line followed by the current view.
func renderTable(w io.Writer, d *client.Directory) error {
	s := d.Summary()
	if _, err := fmt.Fprintf(w, "Showing %d of %d employees%s\n", s.Filtered, s.Total, sortHint(s)); err != nil {
		return err
	}

	view := d.View()
	if len(view) == 0 {
		if s.Total == 0 {
			_, err := fmt.Fprintln(w, "No employees found. Add your first employee to get started.")
			return err
		}
		_, err := fmt.Fprintln(w, "No employees match your search.")
		return err
	}

	cols := d.VisibleColumns()
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	header := []string{"ID"}
	for _, c := range cols {
		header = append(header, strings.ToUpper(c.Label()))
	}
	header = append(header, "CREATED")
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, e := range view {
		row := []string{fmt.Sprint(e.ID)}
		for _, c := range cols {
			row = append(row, c.Value(e))
		}
		row = append(row, e.CreatedAt.UTC().Format(time.DateOnly))
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}
