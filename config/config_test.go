package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetters(t *testing.T) {
	c := map[string]string{
		"PORT":             "9090",
		"BAD_INT":          "nine",
		"USE_CDN":          "true",
		"BAD_BOOL":         "sometimes",
		"BLANK":            "  ",
		"ACCEPTED_ORIGINS": "https://a.dev, ,https://b.dev",
		"TTL":              "5",
	}

	assert.Equal(t, 9090, GetInt(c, "PORT", 8080))
	assert.Equal(t, 8080, GetInt(c, "BAD_INT", 8080))
	assert.Equal(t, 8080, GetInt(c, "MISSING", 8080))
	assert.True(t, GetBool(c, "USE_CDN", false))
	assert.False(t, GetBool(c, "BAD_BOOL", false))
	assert.Equal(t, "fallback", GetString(c, "BLANK", "fallback"))
	assert.Equal(t, "fallback", GetString(nil, "PORT", "fallback"))
	assert.Equal(t, []string{"https://a.dev", "https://b.dev"}, GetStrings(c, "ACCEPTED_ORIGINS"))
	assert.Nil(t, GetStrings(c, "MISSING"))
	assert.Equal(t, 5*time.Second, GetSeconds(c, "TTL", 300))
}

func TestSplit(t *testing.T) {
	key, value := split("A=b=c")
	assert.Equal(t, "A", key)
	assert.Equal(t, "b=c", value)

	key, value = split("ONLYKEY")
	assert.Equal(t, "ONLYKEY", key)
	assert.Equal(t, "", value)
}

func TestDefaultSite(t *testing.T) {
	site := DefaultSite()

	assert.Equal(t, "Zenith", site.Brand)
	assert.Equal(t, "Zenith Portfolio", site.Hero.Name)
	assert.Equal(t, "Data Scientist & AI Engineer", site.Hero.Tagline)
	require.Len(t, site.SkillCategoryOrder, 6)
	assert.Equal(t, "Data Science & AI", site.SkillCategoryOrder[0])
	require.Len(t, site.SocialLinks, 4)
	assert.Equal(t, "GitHub", site.SocialLinks[0].Name)
	assert.Equal(t, "system", site.DefaultTheme)
}

func TestLoadSite_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	yaml := `
brand: Nadir
baseURL: https://example.dev/
hero:
  name: Ada
socialLinks:
  - name: Mastodon
    url: https://hachyderm.io/@ada
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	site, err := LoadSite(path)
	require.NoError(t, err)

	assert.Equal(t, "Nadir", site.Brand)
	assert.Equal(t, "https://example.dev", site.BaseURL)
	assert.Equal(t, "Ada", site.Hero.Name)
	// untouched nested keys keep their defaults
	assert.Equal(t, "Data Scientist & AI Engineer", site.Hero.Tagline)
	require.Len(t, site.SocialLinks, 1)
	assert.Equal(t, "Mastodon", site.SocialLinks[0].Name)
}

func TestLoadSite_MissingExplicitFile(t *testing.T) {
	_, err := LoadSite(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadSite_EnvOverride(t *testing.T) {
	t.Setenv("SITE_BRAND", "FromEnv")
	t.Chdir(t.TempDir())

	site, err := LoadSite("")
	require.NoError(t, err)
	assert.Equal(t, "FromEnv", site.Brand)
}
