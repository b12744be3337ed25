package chrome

import "strings"

// StorageKey is the client-local storage key holding the theme preference.
const StorageKey = "zenith-ui-theme"

type Preference string

const (
	Light  Preference = "light"
	Dark   Preference = "dark"
	System Preference = "system"
)

var preferences = []Preference{Light, Dark, System}

// ParsePreference accepts the three stored values; anything else is rejected.
func ParsePreference(s string) (Preference, bool) {
	for _, p := range preferences {
		if Preference(s) == p {
			return p, true
		}
	}
	return "", false
}

// DefaultPreference is the configured fallback, or System when the setting is not one of the three values.
func DefaultPreference(setting string) Preference {
	if p, ok := ParsePreference(strings.ToLower(strings.TrimSpace(setting))); ok {
		return p
	}
	return System
}

// PreferenceOptions is the space-separated list theme.js accepts from storage.
func PreferenceOptions() string {
	names := make([]string, len(preferences))
	for i, p := range preferences {
		names[i] = string(p)
	}
	return strings.Join(names, " ")
}

// InitialThemeState is what the server renders on <html data-theme-state>. Styling keyed on
// a resolved theme stays off until the bootstrap script has read storage.
const InitialThemeState = "uninitialized"
