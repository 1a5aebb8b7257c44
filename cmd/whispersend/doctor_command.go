package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"whispersend/internal/config"
	"whispersend/internal/logging"
	"whispersend/internal/preflight"
	"whispersend/internal/settings"
	"whispersend/internal/store"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check directories and service reachability",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)

				baseURL := settings.NewResolver(st, logging.NewNop()).ResolveBaseURL(cmd.Context())
				results := preflight.RunAll(cmd.Context(), cfg, baseURL, nil)
				for _, r := range results {
					kind := statusOK
					if !r.Passed {
						kind = statusError
					}
					fmt.Fprintln(out, renderStatusLine(r.Name, kind, r.Detail, colorize))
				}
				if preflight.Failed(results) {
					return errors.New("one or more checks failed")
				}
				return nil
			})
		},
	}
}
