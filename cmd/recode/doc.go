// Package main hosts the recode CLI entrypoint and command graph.
//
// The Cobra-based command tree turns terminal invocations into calls on the
// conversion service: the root command converts a single file, with
// subcommands for encoding detection, codec listings, and configuration
// scaffolding. It centralizes configuration resolution and logger setup so
// individual commands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality to the root recode package
// or the internal packages first, then surface it through dedicated commands
// or flags here.
package main
