package chrome

import (
	"time"

	"github.com/rpupo63/zenith-portfolio/config"
)

type NavItem struct {
	Href   string
	Label  string
	Active bool
}

var (
	navItems = []NavItem{
		{Href: "/", Label: "Home"},
		{Href: "/projects", Label: "Projects"},
		{Href: "/contact", Label: "Contact"},
	}
	quickLinks = []NavItem{
		{Href: "/", Label: "Home"},
		{Href: "/projects", Label: "Projects"},
		{Href: "/#skills", Label: "Skills"},
		{Href: "/contact", Label: "Contact"},
	}
)

// Nav returns the top navigation with the item for path marked active. Matching is exact.
func Nav(path string) []NavItem {
	items := make([]NavItem, len(navItems))
	for i, item := range navItems {
		item.Active = item.Href == path
		items[i] = item
	}
	return items
}

func QuickLinks() []NavItem {
	return append([]NavItem(nil), quickLinks...)
}

// Chrome is the page furniture shared by every rendered page.
type Chrome struct {
	Site       config.Site
	Nav        []NavItem
	QuickLinks []NavItem
	Year       int

	ThemeState      string
	ThemeStorageKey string
	ThemeDefault    Preference
	ThemeOptions    string

	ScrollThreshold       int
	ScrollTopHidden       bool
	ProgressRadius        int
	ProgressCircumference float64
	ProgressInitialOffset float64
}

func New(site config.Site, path string, now time.Time) Chrome {
	return Chrome{
		Site:                  site,
		Nav:                   Nav(path),
		QuickLinks:            QuickLinks(),
		Year:                  now.Year(),
		ThemeState:            InitialThemeState,
		ThemeStorageKey:       StorageKey,
		ThemeDefault:          DefaultPreference(site.DefaultTheme),
		ThemeOptions:          PreferenceOptions(),
		ScrollThreshold:       ScrollThreshold,
		ScrollTopHidden:       !ShowScrollToTop(0),
		ProgressRadius:        ProgressRadius,
		ProgressCircumference: ProgressCircumference(),
		ProgressInitialOffset: ProgressDashOffset(0),
	}
}
