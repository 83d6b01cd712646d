package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/javajack/xlimport"
	"github.com/javajack/xlimport/internal/config"
)

// app carries configuration shared by every subcommand.
type app struct {
	cfg       config.Config
	logger    *slog.Logger
	file      string
	rowPolicy string
	selectExp string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "xlimport",
		Short:         "Import inverter logs from a spreadsheet",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.file, "file", "f", "", "workbook to import (default $XLIMPORT_FILE or Excel/testdata.xlsx next to the binary)")
	flags.StringVar(&a.rowPolicy, "row-policy", "", "malformed row handling: abort or skip")
	flags.StringVar(&a.selectExp, "select", "", "keep only records matching the expression, e.g. 'energy > 0'")

	rootCmd.AddCommand(
		newImportCmd(a),
		newValidateCmd(a),
		newDescribeCmd(a),
		newSummaryCmd(a),
		newServeCmd(a),
		newPushCmd(a),
	)
	return rootCmd
}

// setup loads the environment configuration and applies flag overrides.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.file != "" {
		cfg.File = a.file
	}
	if a.rowPolicy != "" {
		policy, err := xlimport.ParseRowPolicy(a.rowPolicy)
		if err != nil {
			return err
		}
		cfg.RowPolicy = policy
	}
	if a.selectExp != "" {
		cfg.Select = a.selectExp
	}

	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(a.logger)
	return nil
}

func (a *app) importer() *xlimport.Importer {
	return xlimport.NewImporter(a.cfg.ImporterOptions(a.logger)...)
}
