// Package main starts the cursorctl tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/frudas24/cursorctl/internal/action"
	"github.com/frudas24/cursorctl/internal/backend"
	"github.com/frudas24/cursorctl/internal/config"
	"github.com/frudas24/cursorctl/internal/display"
	"github.com/frudas24/cursorctl/internal/execute"
	"github.com/frudas24/cursorctl/internal/parse"
	"github.com/frudas24/cursorctl/internal/watch"
)

// run parses the invocation and dispatches the selected mode.
func run(cmd *cobra.Command, argv []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	parsed, err := parse.Args(argv)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	switch parsed.Mode {
	case parse.ModeHelp:
		return cmd.Help()
	case parse.ModeResolution:
		return showResolution()
	case parse.ModeMonitors:
		return listMonitors()
	case parse.ModeWatch:
		return runWatch(cfg, parsed.Watch)
	}

	if len(parsed.Actions) == 0 {
		return cmd.Help()
	}
	return runSequence(cfg, parsed.Actions)
}

// runSequence snapshots the displays, builds the backend and executes
// the parsed actions under an interruptible context.
func runSequence(cfg config.Config, actions []action.Action) error {
	displays, err := display.Enumerate()
	if err != nil {
		return fmt.Errorf("display: %w", err)
	}
	if !cfg.Quiet {
		logDisplays(displays)
	}

	b, err := backend.New(cfg.Backend)
	if err != nil {
		return fmt.Errorf("backend: %w", err)
	}

	exec := execute.New(b, display.NewResolver(displays, cfg.Bounds))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := exec.Execute(ctx, actions)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("interrupted: %d of %d action(s) executed", report.Executed, len(actions))
		}
		return fmt.Errorf("execute: %w", err)
	}
	if !cfg.Quiet {
		log.Printf("done: %d action(s) executed", report.Executed)
	}
	return nil
}

// logDisplays reports the display snapshot at startup.
func logDisplays(displays []display.Display) {
	for _, d := range displays {
		primary := ""
		if d.Primary {
			primary = " (primary)"
		}
		log.Printf("display %d: %s %dx%d at (%d, %d)%s",
			d.Index, d.Name, d.Width, d.Height, d.OffsetX, d.OffsetY, primary)
	}
}

// showResolution prints the primary display resolution.
func showResolution() error {
	displays, err := display.Enumerate()
	if err != nil {
		return fmt.Errorf("display: %w", err)
	}
	p, ok := display.Primary(displays)
	if !ok {
		return fmt.Errorf("display: no primary monitor")
	}
	fmt.Printf("Screen resolution: %dx%d\n", p.Width, p.Height)
	return nil
}

// listMonitors prints the full display table.
func listMonitors() error {
	displays, err := display.Enumerate()
	if err != nil {
		return fmt.Errorf("display: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "INDEX\tNAME\tWIDTH\tHEIGHT\tOFFSET-X\tOFFSET-Y\tPRIMARY")
	for _, d := range displays {
		primary := ""
		if d.Primary {
			primary = "*"
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%d\t%s\n",
			d.Index, d.Name, d.Width, d.Height, d.OffsetX, d.OffsetY, primary)
	}
	return w.Flush()
}

// runWatch polls live cursor position and clicks until interrupted or
// the configured duration elapses.
func runWatch(cfg config.Config, opts parse.WatchOptions) error {
	b, err := backend.New(cfg.Backend)
	if err != nil {
		return fmt.Errorf("backend: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	w := watch.New(b, watch.NewSampler(), os.Stdout)
	sum, err := w.Run(ctx, watch.Options{
		Interval: opts.Interval,
		Duration: opts.Duration,
		Clicks:   opts.Clicks,
	})
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	log.Printf("watch: %d sample(s), %d left click(s), %d right click(s)",
		sum.Samples, sum.LeftClicks, sum.RightClicks)
	return nil
}
