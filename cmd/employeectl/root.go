package main

import (
	"fmt"
	"io"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"employee_directory/internal/app/di"
	"employee_directory/internal/feature/employee/client"
	"employee_directory/internal/platform/config"
)

// app is the state shared by subcommands.
type app struct {
	in  io.Reader
	out io.Writer

	configPath string
	baseURL    string
	timeout    time.Duration

	api *client.Client
	dir *client.Directory
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	a := &app{in: in, out: out}

	root := &cobra.Command{
		Use:           "employeectl",
		Short:         "Manage the employee directory",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}
	root.SetIn(in)
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "path to config file")
	pf.StringVar(&a.baseURL, "base-url", "", "API base URL (overrides client.base_url)")
	pf.DurationVar(&a.timeout, "timeout", 0, "request timeout (overrides client.timeout)")

	root.AddCommand(
		newListCmd(a),
		newCreateCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
		newExportCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	if a.api != nil {
		return nil
	}
	_ = godotenv.Load(".env")

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("base-url") {
		cfg.Client.BaseURL = a.baseURL
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Client.Timeout = a.timeout
	}
	if cfg.Client.BaseURL == "" {
		return fmt.Errorf("client.base_url is empty")
	}

	a.api = di.NewEmployeeClient(cfg.Client)
	a.dir = client.NewDirectory(a.api)
	return nil
}
