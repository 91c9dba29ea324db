// Package cli holds the configuration, logging and interaction plumbing
// shared by the commands under cmd/.
//
// Every command owns a private viper instance. Values resolve in the usual
// viper order: explicit flag, environment variable (PREFIX_KEY), config
// file, then the command defaults. Flag names use dashes; viper keys use
// underscores.
package cli
