package main

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DucHai972/Questionnaire/internal/report"
	"github.com/DucHai972/Questionnaire/internal/store"
)

func newReportCmd(st *cliState) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "report <run-id>",
		Short: "Render the markdown report for a stored run",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return loadState(st)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			if id == "" {
				return fmt.Errorf("report: missing run id")
			}

			s, err := store.Open(st.cfg)
			if err != nil {
				return fmt.Errorf("report: %w", err)
			}
			defer s.Close()

			run, err := s.GetRun(cmd.Context(), id)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return fmt.Errorf("report: run %q not found", id)
				}
				return fmt.Errorf("report: %w", err)
			}

			md, err := report.RenderMarkdown(run)
			if err != nil {
				return fmt.Errorf("report: %w", err)
			}

			if outPath = strings.TrimSpace(outPath); outPath != "" {
				if err := os.WriteFile(outPath, []byte(md), 0o644); err != nil {
					return fmt.Errorf("report: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", outPath)
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "write the report to a file instead of stdout")
	return cmd
}
