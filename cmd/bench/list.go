package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/DucHai972/Questionnaire/internal/dataset"
	"github.com/DucHai972/Questionnaire/internal/store"
)

func newListCmd(st *cliState) *cobra.Command {
	var (
		datasetName string
		provider    string
		limit       int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored benchmark runs",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return loadState(st)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.Open(st.cfg)
			if err != nil {
				return fmt.Errorf("list: %w", err)
			}
			defer s.Close()

			runs, err := s.ListRuns(cmd.Context(), store.RunFilter{
				Dataset:  datasetName,
				Provider: provider,
				Limit:    limit,
			})
			if err != nil {
				return fmt.Errorf("list: %w", err)
			}

			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs found.")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%-36s  %-16s  %-10s  %5s  %5s  %8s  %s\n",
				"RUN ID", "DATASET", "PROVIDER", "ITERS", "CELLS", "AVG", "STARTED")
			for _, r := range runs {
				fmt.Fprintf(cmd.OutOrStdout(), "%-36s  %-16s  %-10s  %5d  %5d  %8.3f  %s\n",
					r.ID, r.Dataset, r.Provider, r.Iterations, r.Cells, r.AvgScore,
					r.StartedAt.Format(time.RFC3339))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&datasetName, "dataset", "", "filter by dataset name")
	cmd.Flags().StringVar(&provider, "provider", "", "filter by provider name")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of runs to list")
	return cmd
}

func newDatasetsCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "datasets",
		Short: "List registered datasets",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return loadState(st)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := dataset.NewRegistry(st.cfg.Benchmark.DataDir)
			for _, name := range registry.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
