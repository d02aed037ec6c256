// Package stockroom holds module-level metadata for the Stockroom CLI.
package stockroom

// Version is the release version reported by "stockroom version".
const Version = "0.3.0"
