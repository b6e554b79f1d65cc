// Package main hosts the sublaunch operator CLI.
//
// The Cobra-based command tree inspects what the subtitle-maker launcher would
// do without running it (which interpreter candidate wins and the exact child
// command line), scaffolds and validates configuration, and lists the run
// ledger when history is enabled. The launcher itself lives in
// cmd/subtitle-maker; both binaries share the internal packages.
package main
