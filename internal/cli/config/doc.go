// Package config defines the CLI configuration (~/.examprep/cli.yaml)
// and loads it through confloader with flag, env, file and default layers.
package config
