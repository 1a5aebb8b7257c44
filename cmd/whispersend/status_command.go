package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"whispersend/internal/api"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show daemon status",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			addr := ctx.daemonAddress()

			status, err := ctx.client().Status(cmd.Context())
			if err != nil {
				if errors.Is(err, api.ErrDaemonUnavailable) {
					if jsonOutput {
						return writeJSON(cmd, api.DaemonStatus{Running: false, Address: addr})
					}
					fmt.Fprintln(out, renderStatusLine("Daemon", statusError, "Not running ("+addr+")", colorize))
					return nil
				}
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, status)
			}

			fmt.Fprintln(out, renderStatusLine("Daemon", statusOK, "Running (pid "+strconv.Itoa(status.PID)+")", colorize))
			fmt.Fprintln(out, renderStatusLine("Address", statusInfo, status.Address, colorize))
			fmt.Fprintln(out, renderStatusLine("Service", statusInfo, status.BaseURL, colorize))
			ntfyKind := statusWarn
			if status.NtfyEnabled {
				ntfyKind = statusOK
			}
			fmt.Fprintln(out, renderStatusLine("ntfy", ntfyKind, yesNo(status.NtfyEnabled), colorize))
			fmt.Fprintln(out, renderStatusLine("Pending clears", statusInfo, strconv.Itoa(status.PendingTasks), colorize))
			fmt.Fprintln(out, renderStatusLine("Database", statusInfo, status.DatabasePath, colorize))
			if status.StartedAt != "" {
				fmt.Fprintln(out, renderStatusLine("Started", statusInfo, status.StartedAt, colorize))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
