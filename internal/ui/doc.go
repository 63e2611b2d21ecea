// Package ui provides theme and color support for terminal output.
// It defines color schemes and ANSI escape code accessors so the CLI's
// presentation layer stays decoupled from a specific palette.
package ui
