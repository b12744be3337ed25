package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/rpupo63/zenith-portfolio/api"
	"github.com/rpupo63/zenith-portfolio/config"
	"github.com/rpupo63/zenith-portfolio/content"
	"github.com/spf13/cobra"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the page paths rendered at startup",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client := newContentClient(config.New(), nil)

		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()

		paths, err := api.PrerenderPaths(ctx, content.New(client).ProjectRepo())
		for _, path := range paths {
			fmt.Fprintln(cmd.OutOrStdout(), path)
		}
		if err != nil {
			return fmt.Errorf("project slugs unavailable: %w", err)
		}
		return nil
	},
}
