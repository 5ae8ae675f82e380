// Package version - Versionsinformation des Adapters.
// Wird beim Release-Build ueber -ldflags gesetzt.
package version

var Version string = "0.0.0"
