package render

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultTechIcon replaces missing or broken technology icons.
const DefaultTechIcon = "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/javascript/javascript-original.svg"

// FallbackTechLabel is used when an icon URL has no recognisable name in it.
const FallbackTechLabel = "Technology"

var deviconName = regexp.MustCompile(`devicon/icons/([^/]+)/`)

// TechBadge is one technology icon with its human-readable label.
type TechBadge struct {
	IconURL string
	Label   string
}

// TechLabel derives a display name from a technology icon URL:
// ".../devicon/icons/react/react-original.svg" is "React". A bare .svg file name is used
// with its -original/-plain variant suffix dropped; anything else is "Technology".
func TechLabel(iconURL string) string {
	if m := deviconName.FindStringSubmatch(iconURL); m != nil {
		return capitalize(m[1])
	}

	u := iconURL
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	filename := u[strings.LastIndex(u, "/")+1:]
	if !strings.HasSuffix(strings.ToLower(filename), ".svg") {
		return FallbackTechLabel
	}

	name := filename[:len(filename)-len(".svg")]
	name = strings.Replace(name, "-original", "", 1)
	name = strings.Replace(name, "-plain", "", 1)
	if name == "" {
		return FallbackTechLabel
	}
	return capitalize(name)
}

// TechBadges maps icon URLs to badges, keeping order. limit <= 0 means no limit.
func TechBadges(iconURLs []string, limit int) []TechBadge {
	if limit > 0 && len(iconURLs) > limit {
		iconURLs = iconURLs[:limit]
	}

	badges := make([]TechBadge, 0, len(iconURLs))
	for _, iconURL := range iconURLs {
		iconURL = strings.TrimSpace(iconURL)
		if iconURL == "" {
			continue
		}
		badges = append(badges, TechBadge{IconURL: iconURL, Label: TechLabel(iconURL)})
	}
	return badges
}

// capitalize upper-cases the first character only: "dot-net" is "Dot-net".
// Casers are stateful, so one per call.
func capitalize(s string) string {
	_, size := utf8.DecodeRuneInString(s)
	return cases.Upper(language.English).String(s[:size]) + s[size:]
}
