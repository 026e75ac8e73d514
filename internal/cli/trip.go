package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"tripcal/internal/calendar"
	"tripcal/internal/logs"
	"tripcal/internal/trips"
)

// ErrNotPickable is returned when a trip date is disabled on the grid.
var ErrNotPickable = errors.New("date cannot be picked")

func newTripCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trip",
		Short: "Manage trip drafts",
	}
	cmd.AddCommand(newTripNewCmd(o))
	return cmd
}

type tripNewFlags struct {
	date    string
	from    string
	to      string
	depart  string
	seats   int
	price   int
	color   string
	publish bool
	force   bool
}

func newTripNewCmd(o *options) *cobra.Command {
	var f tripNewFlags

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a trip draft on a pickable date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			trip, err := o.createTrip(f)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), filepath.Join(o.cfg.TripsDir, trip.Filename))
			return err
		},
	}

	cmd.Flags().StringVar(&f.date, "date", "", "Departure date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.from, "from", "", "Departure city")
	cmd.Flags().StringVar(&f.to, "to", "", "Destination city")
	cmd.Flags().StringVar(&f.depart, "depart", "", "Departure time (HH:MM)")
	cmd.Flags().IntVar(&f.seats, "seats", 3, "Free seats")
	cmd.Flags().IntVar(&f.price, "price", 0, "Price per seat in minor units")
	cmd.Flags().StringVar(&f.color, "color", "", "Highlight color on the calendar")
	cmd.Flags().BoolVar(&f.publish, "publish", false, "Publish instead of saving a draft")
	cmd.Flags().BoolVar(&f.force, "force", false, "Create even if the date is disabled")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func (o *options) createTrip(f tripNewFlags) (trips.Trip, error) {
	trip, err := trips.NewTrip(f.date, f.from, f.to)
	if err != nil {
		return trips.Trip{}, err
	}
	if f.seats < 0 {
		return trips.Trip{}, fmt.Errorf("--seats must not be negative, got %d", f.seats)
	}
	trip.Depart = f.depart
	trip.Seats = f.seats
	trip.Price = f.price
	trip.Color = f.color
	if f.publish {
		trip.Status = trips.StatusPublished
	}

	if !f.force {
		day, _ := trip.Day()
		grid, _, err := o.buildGrid(calendar.MonthAnchor(day), nowFunc(), "")
		if err != nil {
			return trips.Trip{}, err
		}
		cell, ok := grid.Find(trip.Date)
		if !ok || !cell.Pressable() {
			return trips.Trip{}, fmt.Errorf("%w: %s (use --force to override)", ErrNotPickable, trip.Date)
		}
	}

	if err := os.MkdirAll(o.cfg.TripsDir, 0755); err != nil {
		return trips.Trip{}, err
	}
	created, err := trips.Create(trip, o.cfg.TripsDir)
	if err != nil {
		return trips.Trip{}, err
	}
	logs.Logger.Infow("trip created", "file", created.Filename, "date", created.Date, "status", created.Status)
	return created, nil
}
