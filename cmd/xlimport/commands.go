package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/javajack/xlimport"
	"github.com/javajack/xlimport/internal/server"
	"github.com/javajack/xlimport/internal/store"
	"github.com/javajack/xlimport/internal/summary"
)

// runImport performs the import and downgrades an empty sheet to a warning.
func (a *app) runImport(cmd *cobra.Command) (*xlimport.Importer, error) {
	im := a.importer()
	if err := im.Import(); err != nil {
		if errors.Is(err, xlimport.ErrEmptySheet) {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			return im, nil
		}
		return nil, err
	}
	return im, nil
}

func newImportCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import the workbook and print its records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			im, err := a.runImport(cmd)
			if err != nil {
				return err
			}
			records := im.Records().Records()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}
			if err := renderTable(cmd.OutOrStdout(), records); err != nil {
				return err
			}
			for _, rowErr := range im.Skipped() {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipped: %v\n", rowErr)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print records as JSON")
	return cmd
}

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the workbook against the header schema without importing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			issues, err := a.importer().Validate()
			if err != nil {
				return err
			}
			failed := false
			for _, is := range issues {
				fmt.Fprintln(cmd.OutOrStdout(), is)
				if is.Severity == xlimport.SeverityError {
					failed = true
				}
			}
			if failed {
				return fmt.Errorf("%s: validation failed", a.cfg.File)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", a.cfg.File)
			return nil
		},
	}
}

func newDescribeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "Show the used region and column mapping of the workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.importer().Describe()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func newSummaryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Import the workbook and print per-field statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			im, err := a.runImport(cmd)
			if err != nil {
				return err
			}
			s, err := summary.Compute(im.Records().Records())
			if err != nil {
				return err
			}
			return renderSummary(cmd.OutOrStdout(), s)
		},
	}
}

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the import action and records over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return server.New(a.cfg, a.importer(), a.logger).Run(ctx)
		},
	}
}

func newPushCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Import the workbook and store its records in PostgreSQL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.DatabaseURL == "" {
				return errors.New("DATABASE_URL is required")
			}
			im, err := a.runImport(cmd)
			if err != nil {
				return err
			}
			records := im.Records().Records()

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			pool, err := pgxpool.New(ctx, a.cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := store.EnsureSchema(ctx, pool); err != nil {
				return err
			}
			imp := store.NewImport(a.cfg.File, time.Now())
			if err := store.SaveImport(ctx, pool, imp, records); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "stored %d records as import %s\n", len(records), imp.ID)
			return nil
		},
	}
}
