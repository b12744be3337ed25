package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rpupo63/zenith-portfolio/api"
	"github.com/rpupo63/zenith-portfolio/cache"
	"github.com/rpupo63/zenith-portfolio/config"
	"github.com/rpupo63/zenith-portfolio/content"
	"github.com/rpupo63/zenith-portfolio/metrics"
	"github.com/rpupo63/zenith-portfolio/render"
	"github.com/rpupo63/zenith-portfolio/services"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	defaultFromEmail = "Portfolio Contact <onboarding@resend.dev>"
	shutdownTimeout  = 30 * time.Second
	prerenderTimeout = 2 * time.Minute
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	c := config.New()

	site, err := loadSite(c)
	if err != nil {
		return err
	}

	m := metrics.New()
	client := newContentClient(c, m)
	if config.GetString(c, "SANITY_PROJECT_ID", "") == "" {
		log.Warn().Msg("SANITY_PROJECT_ID is not set; pages will render without content")
	}

	renderer, err := render.New(site, client)
	if err != nil {
		return fmt.Errorf("cmd.serve: %w", err)
	}

	mailer := services.NewResendMailer(services.ResendConfig{
		APIKey: config.GetString(c, "RESEND_API_KEY", ""),
	})
	if config.GetString(c, "RESEND_API_KEY", "") == "" {
		log.Warn().Msg("RESEND_API_KEY is not set; contact submissions will fail")
	}

	pages := cache.New(
		config.GetInt(c, "PAGE_CACHE_SIZE", cache.DefaultSize),
		config.GetSeconds(c, "PAGE_CACHE_TTL_SECONDS", int(cache.DefaultTTL/time.Second)),
	)

	server, err := api.NewServer(c, api.Dependencies{
		Store:    content.New(client),
		Renderer: renderer,
		Pages:    pages,
		Mailer:   mailer,
		Emailer: services.NewContactEmailer(
			config.GetString(c, "RESEND_FROM_EMAIL", defaultFromEmail),
			config.GetString(c, "CONTACT_EMAIL", ""),
		),
		Metrics: m,
	})
	if err != nil {
		return fmt.Errorf("cmd.serve: %w", err)
	}

	errChannel := make(chan error, 2)

	go server.Start(errChannel)
	go listenToInterrupt(errChannel)

	if config.GetBool(c, "PRERENDER", true) {
		go func() {
			ctx, cancel := context.WithTimeout(cmd.Context(), prerenderTimeout)
			defer cancel()
			n, err := server.Prerender(ctx)
			if err != nil {
				log.Warn().Err(err).Int("pages", n).Msg("prerender incomplete")
				return
			}
			log.Info().Int("pages", n).Msg("prerender complete")
		}()
	}

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(shutdownTimeout)
	return serveResult(fatalErr)
}

// interruptError is what listenToInterrupt sends; it ends serve cleanly.
type interruptError struct {
	sig os.Signal
}

func (e interruptError) Error() string {
	return e.sig.String()
}

// serveResult maps the error that stopped the server to the command's result.
// A signal is a normal exit; anything else, such as a port already in use, is a failure.
func serveResult(stopErr error) error {
	var interrupt interruptError
	if stopErr == nil || errors.As(stopErr, &interrupt) {
		return nil
	}
	return fmt.Errorf("cmd.serve: %w", stopErr)
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- interruptError{sig: <-c}
}
