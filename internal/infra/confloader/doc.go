// Package confloader layers configuration sources with koanf.
//
// Priority, highest first:
//
//  1. Overrides (command-line flags, via LoadMap)
//  2. Environment variables (EXAMPREP_API_URL -> api.url)
//  3. The YAML configuration file
//  4. Defaults already present in the target struct
//
// Watcher reports edits to the configuration file so long-running
// sessions such as the REPL can reload it.
package confloader
