package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/rpupo63/zenith-portfolio/config"
	"github.com/rpupo63/zenith-portfolio/content"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the content store is reachable with the current settings",
	RunE: func(cmd *cobra.Command, _ []string) error {
		c := config.New()
		client := newContentClient(c, nil)

		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()

		title, err := content.New(client).Ping(ctx)
		if err != nil {
			return fmt.Errorf("content store check failed: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Connected to project %q, dataset %q\n",
			config.GetString(c, "SANITY_PROJECT_ID", ""),
			config.GetString(c, "SANITY_DATASET", content.DefaultDataset))
		if title == "" {
			fmt.Fprintln(out, "No projects found yet.")
		} else {
			fmt.Fprintf(out, "First project: %s\n", title)
		}
		return nil
	},
}
