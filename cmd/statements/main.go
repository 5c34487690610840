// Command statements converts and summarizes bank statement files from
// the shell, using the same ingestion pipeline as the server.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-dashboard/internal/dashboard"
	"github.com/insightdelivered/statement-dashboard/internal/ingest"
	"github.com/insightdelivered/statement-dashboard/internal/schema"
	"github.com/insightdelivered/statement-dashboard/internal/table"
	"github.com/insightdelivered/statement-dashboard/internal/writer"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "statements",
		Short: "Normalize bank statements and compute dashboard aggregates",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newConvertCommand())
	rootCmd.AddCommand(newSummaryCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newConvertCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "convert <statement-file>",
		Short: "Normalize a statement (csv, xls, xlsx, pdf) into canonical CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := ingestFile(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating %s: %w", output, err)
				}
				defer f.Close()
				out = f
			}

			if err := writer.CSV(out, t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%d transaction(s)\n", t.Len())
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output CSV path (defaults to stdout)")
	return cmd
}

func newSummaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summary <statement-file>",
		Short: "Print dashboard KPIs and chart series for a statement as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := ingestFile(args[0])
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(dashboard.Build(t))
		},
	}
}

func ingestFile(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return ingest.File(filepath.Base(path), f, schema.Default())
}
