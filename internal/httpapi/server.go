// Package httpapi serves calendar grids as JSON for clients that render
// the month list themselves.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"tripcal/internal/agenda"
	"tripcal/internal/calendar"
	"tripcal/internal/config"
)

// PurgeSpec rebuilds grids after UTC midnight so "today" moves on.
const PurgeSpec = "0 0 * * *"

// Server holds the state shared by all requests: one grid cache and the
// latest agenda snapshot.
type Server struct {
	cfg    *config.Config
	cache  *calendar.GridCache
	source agenda.Source
	logger *zap.Logger
	now    func() time.Time

	mu       sync.RWMutex
	snapshot agenda.Snapshot
}

// NewServer creates a server. A nil cache gets a fresh one.
func NewServer(cfg *config.Config, cache *calendar.GridCache, logger *zap.Logger) *Server {
	if cache == nil {
		cache = calendar.NewGridCache()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		cfg:    cfg,
		cache:  cache,
		source: agenda.Source{TripsDir: cfg.TripsDir, BlackoutICS: cfg.BlackoutICS},
		logger: logger,
		now:    time.Now,
	}
}

// SetClock replaces time.Now, for tests.
func (s *Server) SetClock(now func() time.Time) {
	s.now = now
}

// series builds the month list for this request. selected is already validated.
func (s *Server) series(selected string) *calendar.Series {
	s.mu.RLock()
	marks := s.snapshot.Marks(selected)
	s.mu.RUnlock()
	return calendar.NewSeries(s.cfg.SeriesOptions(s.now(), marks), s.cache)
}

func (s *Server) currentSnapshot() agenda.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Reload re-reads trips and blackout days for the current month range.
func (s *Server) Reload() error {
	r := agenda.SeriesRange(s.series(""))
	snap, err := s.source.Query(r)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()

	s.logger.Info("agenda reloaded",
		zap.String("from", r.From),
		zap.String("to", r.To),
		zap.Int("trips", len(snap.Trips)),
		zap.Int("blackout_days", len(snap.Blackout)),
	)
	return nil
}

// PurgeAndReload drops every cached grid and reloads sources.
func (s *Server) PurgeAndReload() {
	n := s.cache.Purge()
	s.logger.Info("grid cache purged", zap.Int("entries", n))
	if err := s.Reload(); err != nil {
		s.logger.Error("reload after purge failed", zap.Error(err))
	}
}

// ScheduleMaintenance returns a cron (not yet started) that purges the
// cache at PurgeSpec in UTC.
func (s *Server) ScheduleMaintenance() (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(time.UTC))
	if _, err := c.AddFunc(PurgeSpec, s.PurgeAndReload); err != nil {
		return nil, err
	}
	return c, nil
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := NewRouter(s, addr)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
