// Package main starts the cursorctl tool.
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

const longHelp = `cursorctl drives mouse and keyboard input from the command line.

Actions are given as ordered flags, as a compact script, or as a JSON/YAML
sequence document; all three forms produce the same sequence.

Ordered flags (override flags bind to the nearest preceding action):
  cursorctl --move 400 300 --smooth --duration 0.5 --click --double
  cursorctl --drag-from 10 10 200 200 --smooth --wait 1 --key enter

Compact script:
  cursorctl --do 'move 400 300 --smooth; click --count=2; type "hello world"'

Sequence document (inline JSON, or a path to a .json/.yaml file):
  cursorctl --sequence '[{"type":"move","x":400,"y":300,"monitor_index":1}]'
  cursorctl --sequence steps.yaml

Global defaults apply wherever an action has no explicit override:
  --global-delay --global-smooth --global-duration --global-steps
  --global-button --global-interval

Informational modes (mutually exclusive with actions):
  --show-resolution   print the primary display resolution
  --list-monitors     print the display table
  --monitor           poll live cursor position and clicks
                      [--monitor-interval S] [--monitor-duration S]
                      [--no-monitor-clicks]`

// main is the entrypoint for the cursorctl CLI.
func main() {
	root := &cobra.Command{
		Use:   "cursorctl [x y] [flags]",
		Short: "Drive mouse and keyboard input from the command line",
		Long:  longHelp,
		// The action grammar is order-sensitive, so raw argv goes to the
		// left-to-right scanner instead of the flag machinery.
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE:               run,
	}

	if err := root.Execute(); err != nil {
		log.Printf("fatal: %v", err)
		os.Exit(1)
	}
}
