package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DucHai972/Questionnaire/api"
	"github.com/DucHai972/Questionnaire/internal/store"
)

func newServeCmd(st *cliState) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve stored benchmark runs over HTTP",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return loadState(st)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.Open(st.cfg)
			if err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			defer s.Close()

			srv, err := api.NewServer(st.cfg, s)
			if err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			return srv.Run(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}
