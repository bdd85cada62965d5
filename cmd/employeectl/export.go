package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"employee_directory/internal/feature/employee/client"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		vf     viewFlags
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the filtered and sorted view to CSV or XLSX",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "csv" && format != "xlsx" {
				return fmt.Errorf("unsupported format %q (want csv or xlsx)", format)
			}
			if err := vf.apply(a.dir); err != nil {
				return err
			}
			if err := a.dir.Refresh(cmd.Context()); err != nil {
				return err
			}
			if output == "" {
				output = client.ExportFilename(time.Now(), format)
			}

			write := a.dir.ExportCSV
			if format == "xlsx" {
				write = a.dir.ExportXLSX
			}
			if err := writeExport(output, write); err != nil {
				return fmt.Errorf("export %s: %w", output, err)
			}
			fmt.Fprintf(a.out, "Exported %d employees to %s\n", len(a.dir.View()), output)
			return nil
		},
	}
	vf.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "csv or xlsx")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default employees_YYYY-MM-DD.<format>)")
	return cmd
}

// writeExport creates path and fills it with write. On any failure the file is
// removed so no partial export is left behind.
func writeExport(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = write(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return err
	}
	return nil
}
