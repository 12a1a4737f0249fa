package registry

import (
	"strings"
	"unicode/utf8"
)

const (
	maskPrefix     = "****"
	minRevealLen   = 8
	revealedSuffix = 4
)

var secretSuffixes = []string{"_API_KEY", "_SECRET", "_TOKEN"}

// IsSecretKey reports whether values stored under key should be masked when displayed.
func IsSecretKey(key string) bool {
	for _, suffix := range secretSuffixes {
		if strings.HasSuffix(key, suffix) {
			return true
		}
	}
	return false
}

// MaskValue hides value when key names a secret. Values of at least eight
// characters keep their last four characters visible.
func MaskValue(key, value string) string {
	if !IsSecretKey(key) {
		return value
	}
	if utf8.RuneCountInString(value) < minRevealLen {
		return maskPrefix
	}
	runes := []rune(value)
	return maskPrefix + string(runes[len(runes)-revealedSuffix:])
}

// Redact returns a copy of settings with secret values masked.
func Redact(settings map[string]string) map[string]string {
	out := make(map[string]string, len(settings))
	for key, value := range settings {
		out[key] = MaskValue(key, value)
	}
	return out
}
