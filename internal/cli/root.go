// Package cli holds the tripcal command tree.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"tripcal/internal/calendar"
	"tripcal/internal/config"
	"tripcal/internal/logs"
	"tripcal/internal/trips"
	"tripcal/internal/tui"
)

// nowFunc is the clock every command reads; tests pin it.
var nowFunc = time.Now

// options carries persistent flags and the loaded config to subcommands.
type options struct {
	configPath string
	locale     string
	firstDay   int
	tripsDir   string
	verbose    bool

	cfg *config.Config
}

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	o := &options{}

	root := &cobra.Command{
		Use:   "tripcal",
		Short: "Trip-date calendar: month grids, blackout days and trip drafts",
		Long: `tripcal lays out scrollable month grids for picking trip dates.

Run without arguments to open the terminal calendar. Trip drafts are read
from markdown files, blackout days from an ICS calendar, and both become
marked dates on the grid.`,
		SilenceUsage:      true,
		PersistentPreRunE: o.load,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logs.Close()
		},
		RunE: o.runTUI,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&o.configPath, "config", "", "Config file (default ~/.config/tripcal/config.yaml)")
	pf.StringVar(&o.locale, "locale", "", "Display locale, e.g. en-US, ru, de-AT")
	pf.IntVar(&o.firstDay, "first-day", 1, "First day of the week, 0 = Sunday")
	pf.StringVar(&o.tripsDir, "trips-dir", "", "Directory of trip drafts")
	pf.BoolVarP(&o.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newGridCmd(o),
		newMonthsCmd(o),
		newServeCmd(o),
		newLocalesCmd(o),
		newTripCmd(o),
	)
	return root
}

// Execute runs the command tree and returns the process exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		return 1
	}
	return 0
}

func (o *options) flags(cmd *cobra.Command) config.CLIFlags {
	flags := config.CLIFlags{
		ConfigPath: o.configPath,
		Locale:     o.locale,
		TripsDir:   o.tripsDir,
	}
	if cmd.Flags().Changed("first-day") {
		v := o.firstDay
		flags.FirstDay = &v
	}
	if f := cmd.Flags().Lookup("listen"); f != nil && f.Changed {
		flags.Listen = f.Value.String()
	}
	return flags
}

func (o *options) load(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(o.flags(cmd))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	o.cfg = cfg

	if err := config.EnsureConfigFile(o.configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create config file: %v\n", err)
	}
	if err := logs.Initialize(cfg.LogDir, o.verbose); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not initialize logger: %v\n", err)
	}
	for _, w := range cfg.Warnings() {
		logs.Logger.Warnw("config value dropped", "detail", w)
	}
	logs.Logger.Debugw("config loaded",
		"locale", cfg.Locale,
		"first_day", cfg.FirstDay,
		"trips_dir", cfg.TripsDir,
		"command", cmd.Name())
	return nil
}

// runTUI opens the terminal calendar and reloads marks while trip files change.
func (o *options) runTUI(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	changes := make(chan struct{}, 1)
	notify := func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	}

	model := tui.NewAppModel(o.cfg, tui.Options{
		Now:     nowFunc,
		Changes: changes,
		OnPress: func(d calendar.CalendarDate) {
			logs.Logger.Infow("date picked", "date", d.DateString, "timestamp", d.Timestamp)
		},
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return trips.Watch(ctx, o.cfg.TripsDir, trips.DefaultDebounce, notify)
	})
	g.Go(func() error {
		defer cancel()
		logs.Logger.Infow("starting terminal calendar")
		_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
		return err
	})
	return g.Wait()
}
