package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"whispersend/internal/api"
	"whispersend/internal/trigger"
)

func newMenusCommand() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:         "menus",
		Short:       "Show the context menus a browser bridge should register",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			menus := trigger.Menus()
			if jsonOutput {
				return writeJSON(cmd, api.MenuListResponse{Menus: menus})
			}
			rows := make([][]string, 0, len(menus))
			for _, menu := range menus {
				patterns := menu.DocumentURLPatterns
				scope := "document"
				if len(patterns) == 0 {
					patterns = menu.TargetURLPatterns
					scope = "target"
				}
				rows = append(rows, []string{
					menu.ID,
					menu.Title,
					strings.Join(menu.Contexts, ","),
					scope + ": " + strings.Join(patterns, " "),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "Title", "Contexts", "Patterns"}, rows, nil))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
