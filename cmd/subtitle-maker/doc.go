// Package main is the subtitle-maker launcher.
//
// It runs subtitle_maker.py with --no-preview followed by every argument it
// was given, using the interpreter of the sibling virtual environment when one
// exists and the system python otherwise, then waits for a key press so a
// console window opened just for the run stays readable. The launcher defines
// no flags of its own; even -h and --help are handed to the script.
package main
