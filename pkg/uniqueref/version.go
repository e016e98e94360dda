// Package uniqueref exposes module-level metadata.
package uniqueref

// Version is the module version reported by the CLI.
const Version = "0.1.0"
