// Package main provides the overflow CLI.
//
// Usage:
//
//	overflow fit [flags] item...   Compute which items fit a container
//	overflow demo [flags] [label...]  Run a live toolbar in the terminal
//	overflow help                  Show help
//
// Examples:
//
//	overflow fit -width 200 -reserve 50 80 80 80 80
//	overflow fit -width 30 -measure cells Inbox Drafts Sent Archive
//	overflow demo Inbox Drafts Sent Archive Spam Trash
package main

import (
	"fmt"
	"os"

	"github.com/grindlemire/go-overflow/internal/debug"
)

const version = "0.1.0"

const usage = `overflow - keep a row of items within its container

Usage:
  overflow <command> [options] [args...]

Commands:
  fit         Compute which items fit a container width
  demo        Run a live toolbar that hides what does not fit
  version     Print version information
  help        Show this help message

Fit options:
  -width N        Container width (required)
  -reserve N      Width kept free for the overflow control (default 40)
  -rows N         Number of rows to pack (default 1)
  -evict          Hide the largest items first
  -gap N          Spacing between items (default: inferred)
  -pin ITEM       Keep ITEM visible
  -measure MODE   numbers, cells, font or shaped (default numbers)
  -size N         Font size for font and shaped modes (default 14)
  -config FILE    Read defaults from a TOML config file

Demo options:
  -rows N         Number of rows to pack (default 1)
  -evict          Hide the largest items first
  -clock          Add a clock item whose width changes over time
  -log FILE       Write a debug log to FILE (overrides OVERFLOW_DEBUG)

Keys in demo: q quit, + and - change rows, e toggle eviction, p pin last item

Examples:
  overflow fit -width 200 -reserve 50 80 80 80 80
  overflow fit -width 30 -reserve 4 -measure cells Inbox Drafts Sent Archive
  overflow fit -width 300 -measure shaped -size 16 Inbox Settings
  overflow demo -rows 2 Inbox Drafts Sent Archive Spam Trash

Set OVERFLOW_DEBUG=/path/to/log to write a debug log.
`

func main() {
	defer debug.Close()

	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "fit":
		if err := runFit(args, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "demo":
		if err := runDemo(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("overflow version %s\n", version)
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", command)
		fmt.Print(usage)
		os.Exit(1)
	}
}
