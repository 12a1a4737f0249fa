// Package registry holds the mutable key-value settings shared across the
// service: cloud project number, API key, page URLs, environment name and
// log level. Defaults are seeded once at construction and overridden by
// same-named environment variables; afterwards values change only through Set.
package registry
