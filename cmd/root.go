package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rpupo63/zenith-portfolio/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var siteFile string

var rootCmd = &cobra.Command{
	Use:   "zenith",
	Short: "Server-rendered portfolio site backed by a headless content store",
	Long: `zenith renders the portfolio pages (home, projects, project detail, contact) from
content held in a Sanity dataset, serves the contact form and the revalidation webhook,
and exposes robots.txt, sitemap.xml, health and metrics endpoints.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		configureLogging(config.New())
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&siteFile, "site", "", "site settings file (default is $SITE_CONFIG or ./site.yaml)")
	rootCmd.AddCommand(serveCmd, checkCmd, routesCmd)
}

// configureLogging applies LOG_LEVEL and LOG_FORMAT to the global zerolog logger.
func configureLogging(c map[string]string) {
	level, err := zerolog.ParseLevel(strings.ToLower(config.GetString(c, "LOG_LEVEL", "info")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if config.GetString(c, "LOG_FORMAT", "console") == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

func loadSite(c map[string]string) (config.Site, error) {
	path := siteFile
	if path == "" {
		path = config.GetString(c, "SITE_CONFIG", "")
	}
	return config.LoadSite(path)
}
