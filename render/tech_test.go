package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTechLabel(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://cdn.jsdelivr.net/gh/devicons/devicon/icons/react/react-original.svg", "React"},
		{".../devicon/icons/react/react-original.svg", "React"},
		{"https://cdn.jsdelivr.net/gh/devicons/devicon/icons/python/python-plain.svg", "Python"},
		{"https://example.com/logos/tensorflow-original.svg", "Tensorflow"},
		{"https://example.com/logos/pandas.svg?v=2", "Pandas"},
		{"https://example.com/logos/pandas.png", "Technology"},
		{"not a url", "Technology"},
		{"", "Technology"},
		{"https://example.com/logos/", "Technology"},
		{"https://cdn.jsdelivr.net/gh/devicons/devicon/icons/dot-net/dot-net-original.svg", "Dot-net"},
		{"https://example.com/logos/google_cloud-original.svg", "Google_cloud"},
		{"https://example.com/logos/amazonwebservices-plain-wordmark.svg", "Amazonwebservices-wordmark"},
		{"https://example.com/logos/éclair.svg", "Éclair"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, TechLabel(tt.url))
		})
	}
}

func TestTechBadges(t *testing.T) {
	urls := []string{
		"https://x/devicon/icons/go/go-original.svg",
		" ",
		"https://x/devicon/icons/rust/rust-plain.svg",
		"https://x/devicon/icons/docker/docker-original.svg",
		"https://x/devicon/icons/redis/redis-original.svg",
	}

	badges := TechBadges(urls, 3)
	assert.Len(t, badges, 2)
	assert.Equal(t, "Go", badges[0].Label)
	assert.Equal(t, "Rust", badges[1].Label)

	assert.Len(t, TechBadges(urls, 0), 4)
}
