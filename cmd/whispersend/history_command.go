package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"whispersend/internal/api"
	"whispersend/internal/config"
	"whispersend/internal/store"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent submissions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				n := limit
				if n <= 0 {
					n = cfg.Daemon.HistoryLimit
				}
				subs, err := st.RecentSubmissions(cmd.Context(), n)
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, api.HistoryResponse{Submissions: api.FromSubmissions(subs)})
				}
				out := cmd.OutOrStdout()
				if len(subs) == 0 {
					fmt.Fprintln(out, "No submissions yet")
					return nil
				}
				fmt.Fprintln(out, renderTable(
					[]string{"When", "Trigger", "Outcome", "HTTP", "Message", "URL"},
					historyRows(subs),
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Number of submissions to show (defaults to daemon.history_limit)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func historyRows(subs []store.Submission) [][]string {
	rows := make([][]string, 0, len(subs))
	for _, sub := range subs {
		status := "-"
		if sub.HTTPStatus > 0 {
			status = strconv.Itoa(sub.HTTPStatus)
		}
		rows = append(rows, []string{
			sub.CreatedAt.Local().Format(time.DateTime),
			sub.Trigger,
			outcomeLabel(sub.Kind),
			status,
			sub.Message,
			sub.URL,
		})
	}
	return rows
}
