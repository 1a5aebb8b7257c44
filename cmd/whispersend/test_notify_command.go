package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"whispersend/internal/notifications"
)

func newTestNotifyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "test-notify",
		Short: "Send a test ntfy notification",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			out := cmd.OutOrStdout()
			topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
			if topic == "" {
				fmt.Fprintln(out, "ntfy topic not configured")
				return nil
			}
			timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
			if err := notifications.NewNtfy(topic, &http.Client{Timeout: timeout}).Test(cmd.Context()); err != nil {
				return fmt.Errorf("send test notification: %w", err)
			}
			fmt.Fprintln(out, "Test notification sent")
			return nil
		},
	}
}
