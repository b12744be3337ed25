package cmd

import (
	"github.com/rpupo63/zenith-portfolio/config"
	"github.com/rpupo63/zenith-portfolio/content"
	"github.com/rpupo63/zenith-portfolio/metrics"
)

// newContentClient builds the content client from SANITY_* settings.
func newContentClient(c map[string]string, m *metrics.Metrics) *content.Client {
	return content.NewClient(content.Options{
		ProjectID:  config.GetString(c, "SANITY_PROJECT_ID", ""),
		Dataset:    config.GetString(c, "SANITY_DATASET", content.DefaultDataset),
		APIVersion: config.GetString(c, "SANITY_API_VERSION", content.DefaultAPIVersion),
		UseCDN:     config.GetBool(c, "SANITY_USE_CDN", false),
		Token:      config.GetString(c, "SANITY_TOKEN", ""),
		Host:       config.GetString(c, "SANITY_API_HOST", ""),
		Metrics:    m,
	})
}
