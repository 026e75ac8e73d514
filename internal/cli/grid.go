package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tripcal/internal/agenda"
	"tripcal/internal/calendar"
	"tripcal/internal/tui/monthlist"
	"tripcal/internal/tui/theme"
)

type gridOutput struct {
	Month    string           `json:"month"`
	Title    string           `json:"title"`
	Weekdays [7]string        `json:"weekdays"`
	Weeks    []calendar.Week  `json:"weeks"`
	Days     []agenda.DayInfo `json:"days,omitempty"`
}

func newGridCmd(o *options) *cobra.Command {
	var (
		asJSON   bool
		selected string
	)

	cmd := &cobra.Command{
		Use:   "grid [YYYY-MM]",
		Short: "Print one month grid (default: this month)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := nowFunc()
			anchor := calendar.MonthAnchor(now.In(o.cfg.TodayLocation()))
			if len(args) == 1 {
				a, err := calendar.ParseMonthKey(args[0])
				if err != nil {
					return fmt.Errorf("month must be YYYY-MM: %w", err)
				}
				anchor = a
			}
			if err := calendar.ValidateISO(selected); err != nil {
				return fmt.Errorf("--selected: %w", err)
			}

			grid, snap, err := o.buildGrid(anchor, now, selected)
			if err != nil {
				return err
			}
			loc := o.cfg.LocaleValue()

			if asJSON {
				out := gridOutput{
					Month:    grid.Month,
					Title:    loc.MonthTitle(grid.Anchor),
					Weekdays: loc.WeekdayHeaders(o.cfg.FirstDay),
					Weeks:    grid.Weeks,
				}
				for _, cell := range grid.Cells() {
					if cell.Placeholder {
						continue
					}
					if info := snap.Day(cell.ISODate); info.Blackout || len(info.Trips) > 0 {
						out.Days = append(out.Days, info)
					}
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			styles := theme.NewStyles(o.cfg.Theme)
			_, err = fmt.Fprint(cmd.OutOrStdout(), monthlist.RenderMonth(grid, loc, styles, o.cfg.FirstDay, ""))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print cells as JSON")
	cmd.Flags().StringVar(&selected, "selected", "", "Mark this date as selected (YYYY-MM-DD)")
	return cmd
}

// buildGrid lays out one month with trip and blackout marks applied.
func (o *options) buildGrid(anchor, now time.Time, selected string) (calendar.MonthGrid, agenda.Snapshot, error) {
	src := agenda.Source{TripsDir: o.cfg.TripsDir, BlackoutICS: o.cfg.BlackoutICS}
	snap, err := src.Query(agenda.MonthRange(anchor))
	if err != nil {
		return calendar.MonthGrid{}, snap, err
	}
	grid := calendar.BuildMonthGrid(anchor, o.cfg.GridOptions(now, snap.Marks(selected)))
	return grid, snap, nil
}
