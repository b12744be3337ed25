package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Link is a labelled outbound link rendered in the page chrome.
type Link struct {
	Name string `mapstructure:"name"`
	URL  string `mapstructure:"url"`
	Icon string `mapstructure:"icon"`
}

// HeroCopy is the hero text shown when the content store has no bio.
type HeroCopy struct {
	Name        string `mapstructure:"name"`
	Tagline     string `mapstructure:"tagline"`
	Description string `mapstructure:"description"`
}

// Site holds presentation settings that do not live in the content store.
type Site struct {
	Title              string   `mapstructure:"title"`
	Description        string   `mapstructure:"description"`
	Brand              string   `mapstructure:"brand"`
	BaseURL            string   `mapstructure:"baseURL"`
	StudioURL          string   `mapstructure:"studioURL"`
	FooterBlurb        string   `mapstructure:"footerBlurb"`
	DefaultTheme       string   `mapstructure:"defaultTheme"`
	Hero               HeroCopy `mapstructure:"hero"`
	SocialLinks        []Link   `mapstructure:"socialLinks"`
	BuiltWith          []string `mapstructure:"builtWith"`
	SkillCategoryOrder []string `mapstructure:"skillCategoryOrder"`
}

func setSiteDefaults(v *viper.Viper) {
	v.SetDefault("title", "Zenith Portfolio - Data Scientist & AI Engineer")
	v.SetDefault("description", "Professional portfolio showcasing data science projects and AI engineering work.")
	v.SetDefault("brand", "Zenith")
	v.SetDefault("baseURL", "https://your-portfolio.vercel.app")
	v.SetDefault("studioURL", "https://your-studio.sanity.studio")
	v.SetDefault("footerBlurb", "Transforming complex problems into elegant solutions through data science, artificial intelligence, and cutting-edge software engineering.")
	v.SetDefault("defaultTheme", "system")
	v.SetDefault("hero.name", "Zenith Portfolio")
	v.SetDefault("hero.tagline", "Data Scientist & AI Engineer")
	v.SetDefault("hero.description", "Building intelligent solutions with data and machine learning")
	v.SetDefault("socialLinks", []map[string]string{
		{"name": "GitHub", "url": "https://github.com/yourusername", "icon": "🐙"},
		{"name": "LinkedIn", "url": "https://linkedin.com/in/yourprofile", "icon": "💼"},
		{"name": "Twitter", "url": "https://twitter.com/yourusername", "icon": "🐦"},
		{"name": "Email", "url": "mailto:your.email@example.com", "icon": "📧"},
	})
	v.SetDefault("builtWith", []string{"Go", "chi", "html/template", "Sanity CMS"})
	v.SetDefault("skillCategoryOrder", []string{
		"Data Science & AI",
		"Programming Languages",
		"Frameworks & Libraries",
		"Cloud & DevOps",
		"Databases",
		"Tools & Platforms",
	})
}

// DefaultSite returns the built-in site settings without reading any file or environment.
func DefaultSite() Site {
	v := viper.New()
	setSiteDefaults(v)

	var site Site
	// defaults always decode
	_ = v.Unmarshal(&site)
	return site
}

// LoadSite reads site settings from path (or ./site.yaml when path is empty),
// applying SITE_* environment overrides on top of the defaults.
func LoadSite(path string) (Site, error) {
	v := viper.New()
	setSiteDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("site")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("SITE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Site{}, fmt.Errorf("config.LoadSite: %w", err)
		}
	}

	var site Site
	if err := v.Unmarshal(&site); err != nil {
		return Site{}, fmt.Errorf("config.LoadSite: decode: %w", err)
	}
	site.BaseURL = strings.TrimSuffix(site.BaseURL, "/")
	return site, nil
}
