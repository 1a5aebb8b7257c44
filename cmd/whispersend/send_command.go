package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"whispersend/internal/api"
	"whispersend/internal/config"
	"whispersend/internal/feedback"
	"whispersend/internal/host"
	"whispersend/internal/notifications"
	"whispersend/internal/settings"
	"whispersend/internal/store"
	"whispersend/internal/submit"
	"whispersend/internal/trigger"
)

func newSendCommand(ctx *commandContext) *cobra.Command {
	var via string
	var jsonOutput bool
	var verbose bool

	cmd := &cobra.Command{
		Use:   "send <url>",
		Short: "Submit a video URL directly, without a daemon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := sourceFor(via, args[0])
			if err != nil {
				return err
			}
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				logger := ctx.cliLogger(verbose)
				out := cmd.OutOrStdout()

				surfaces := []feedback.Notifier{notifications.NewService(cfg)}
				if cfg.Notifications.Console && !jsonOutput {
					surfaces = append(surfaces, host.NewConsole(out))
				}
				presenter := feedback.NewPresenter(host.NewBadge(), notifications.NewFanout(logger, surfaces...),
					feedback.WithLogger(logger),
				)
				// Nothing outlives the process; run the pending clears now.
				defer presenter.Scheduler().Flush()

				submitter := submit.New(settings.NewResolver(st, logger), submit.WithLogger(logger))
				dispatcher := trigger.NewDispatcher(submitter, presenter,
					trigger.WithRecorder(st),
					trigger.WithLogger(logger),
				)
				result := dispatcher.Dispatch(cmd.Context(), src)

				switch {
				case jsonOutput:
					if err := writeJSON(cmd, api.FromResult(result)); err != nil {
						return err
					}
				case !cfg.Notifications.Console:
					fmt.Fprintln(out, renderStatusLine("Whisper Summary", outcomeStatusKind(string(result.Outcome.Kind)), result.Signal.Message, shouldColorize(out)))
				}
				if !result.Outcome.OK() {
					return fmt.Errorf("submission %s", strings.ReplaceAll(string(result.Outcome.Kind), "_", " "))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&via, "via", "toolbar", "Trigger to emulate: toolbar, page, or link")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the result as JSON")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log submission details to stderr")
	return cmd
}

func sourceFor(via, rawURL string) (trigger.Source, error) {
	switch strings.ToLower(strings.TrimSpace(via)) {
	case "", "toolbar":
		return trigger.Toolbar{Tab: &trigger.Tab{URL: rawURL}}, nil
	case "page":
		return trigger.PageMenu{PageURL: rawURL}, nil
	case "link":
		return trigger.LinkMenu{LinkURL: rawURL}, nil
	default:
		return nil, fmt.Errorf("unknown trigger %q (want toolbar, page, or link)", via)
	}
}
