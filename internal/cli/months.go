package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"tripcal/internal/agenda"
	"tripcal/internal/calendar"
)

func newMonthsCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "months",
		Short: "List the months the calendar scrolls through",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := nowFunc()
			series := calendar.NewSeries(o.cfg.SeriesOptions(now, nil), nil)
			snap, err := agenda.Source{TripsDir: o.cfg.TripsDir, BlackoutICS: o.cfg.BlackoutICS}.
				Query(agenda.SeriesRange(series))
			if err != nil {
				return err
			}

			loc := o.cfg.LocaleValue()
			out := cmd.OutOrStdout()
			for _, anchor := range series.Anchors() {
				r := agenda.MonthRange(anchor)
				trips, blackout := 0, 0
				for _, t := range snap.Trips {
					if r.Contains(t.Date) {
						trips++
					}
				}
				for _, d := range snap.Blackout {
					if r.Contains(d) {
						blackout++
					}
				}
				line := fmt.Sprintf("%s  %s", calendar.MonthKey(anchor), loc.MonthTitle(anchor))
				if trips > 0 || blackout > 0 {
					line += fmt.Sprintf("  (%d trips, %d blackout)", trips, blackout)
				}
				if _, err := fmt.Fprintln(out, line); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
