package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"whispersend/internal/api"
	"whispersend/internal/trigger"
)

func newTriggerCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	triggerCmd := &cobra.Command{
		Use:   "trigger",
		Short: "Fire a browser trigger against the running daemon",
	}
	triggerCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output the result as JSON")

	report := func(cmd *cobra.Command, resp *api.TriggerResponse) error {
		if jsonOutput {
			return writeJSON(cmd, resp)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, renderStatusLine(outcomeLabel(resp.Outcome), outcomeStatusKind(resp.Outcome), resp.Signal.Message, shouldColorize(out)))
		return nil
	}

	toolbarCmd := &cobra.Command{
		Use:   "toolbar [tab-url]",
		Short: "Toolbar button on a tab (no argument means no active tab)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var tabURL string
			if len(args) == 1 {
				tabURL = args[0]
			}
			resp, err := ctx.client().Toolbar(cmd.Context(), tabURL)
			if err != nil {
				return wrapDaemonError(err, ctx.daemonAddress())
			}
			return report(cmd, resp)
		},
	}

	menuCommand := func(use, short, menuID string) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				click := api.MenuRequest{MenuItemID: menuID}
				if menuID == trigger.MenuSendLink {
					click.LinkURL = args[0]
				} else {
					click.PageURL = args[0]
				}
				resp, err := ctx.client().Menu(cmd.Context(), click)
				if err != nil {
					return wrapDaemonError(err, ctx.daemonAddress())
				}
				return report(cmd, resp)
			},
		}
	}

	triggerCmd.AddCommand(toolbarCmd)
	triggerCmd.AddCommand(menuCommand("page <page-url>", "\"Send page\" context menu", trigger.MenuSendPage))
	triggerCmd.AddCommand(menuCommand("link <link-url>", "\"Send link\" context menu", trigger.MenuSendLink))
	return triggerCmd
}
