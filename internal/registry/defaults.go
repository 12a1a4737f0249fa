package registry

import (
	"slices"
	"strings"
)

// Setting keys seeded by New.
const (
	KeyCloudProjectNumber = "CLOUD_PROJECT_NUMBER"
	KeyDeepgramAPIKey     = "DEEPGRAM_API_KEY"
	KeyMainstageURL       = "MAINSTAGE_URL"
	KeySidepanelURL       = "SIDEPANEL_URL"
	KeyEnvironment        = "ENVIRONMENT"
	KeyLogLevel           = "LOG_LEVEL"
)

// Default values that do not depend on the base origin.
const (
	DefaultCloudProjectNumber = "YOUR_CLOUD_PROJECT_NUMBER"
	DefaultDeepgramAPIKey     = "YOUR_DEEPGRAM_API_KEY"
	DefaultEnvironment        = "production"
	DefaultLogLevel           = "info"
)

const (
	mainstagePath = "/mainstage.html"
	sidepanelPath = "/sidepanel.html"
)

var defaultKeys = []string{
	KeyCloudProjectNumber,
	KeyDeepgramAPIKey,
	KeyEnvironment,
	KeyLogLevel,
	KeyMainstageURL,
	KeySidepanelURL,
}

// Defaults returns a fresh map of the default settings. The page URLs are
// baseOrigin with any trailing slash removed, followed by the page path.
func Defaults(baseOrigin string) map[string]string {
	origin := strings.TrimRight(baseOrigin, "/")

	return map[string]string{
		KeyCloudProjectNumber: DefaultCloudProjectNumber,
		KeyDeepgramAPIKey:     DefaultDeepgramAPIKey,
		KeyMainstageURL:       origin + mainstagePath,
		KeySidepanelURL:       origin + sidepanelPath,
		KeyEnvironment:        DefaultEnvironment,
		KeyLogLevel:           DefaultLogLevel,
	}
}

// DefaultKeys returns the sorted list of keys seeded by New.
func DefaultKeys() []string {
	return slices.Clone(defaultKeys)
}

// IsDefaultKey reports whether key belongs to the seeded key set.
func IsDefaultKey(key string) bool {
	return slices.Contains(defaultKeys, key)
}
