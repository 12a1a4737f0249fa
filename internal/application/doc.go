// Package application provides application initialization and dependency wiring.
// It builds the settings registry, the logger configured from it, and the
// handlers, router and HTTP server that expose it, keeping the main package
// focused on CLI parsing and orchestration.
package application
