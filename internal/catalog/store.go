package catalog

import (
	"sync/atomic"

	"shipping-allocation-engine/internal/logx"
)

// Store hands out the current catalog snapshot and swaps it on reload.
type Store struct {
	source string
	load   func() (*Catalog, error)
	logger logx.Logger
	cur    atomic.Pointer[Catalog]
}

// NewStore loads the catalog from path (embedded seed when empty).
// A malformed catalog is a startup error.
func NewStore(path string, logger logx.Logger) (*Store, error) {
	source := path
	if source == "" {
		source = SeedSource
	}
	return newStore(source, func() (*Catalog, error) { return LoadFile(path) }, logger)
}

// NewStaticStore wraps an already built catalog. Reload re-publishes it.
func NewStaticStore(c *Catalog) *Store {
	s := &Store{source: "static", load: func() (*Catalog, error) { return c, nil }, logger: logx.Nop()}
	s.cur.Store(c)
	return s
}

func newStore(source string, load func() (*Catalog, error), logger logx.Logger) (*Store, error) {
	if logger == nil {
		logger = logx.Nop()
	}
	c, err := load()
	if err != nil {
		return nil, err
	}
	s := &Store{source: source, load: load, logger: logger}
	s.cur.Store(c)
	return s, nil
}

// Current returns the active snapshot.
func (s *Store) Current() *Catalog {
	return s.cur.Load()
}

// Reload re-reads the source. On error the previous snapshot stays active.
func (s *Store) Reload() (*Catalog, error) {
	next, err := s.load()
	if err != nil {
		s.logger.Error("catalog reload failed", logx.String("source", s.source), logx.Err(err))
		return nil, err
	}
	prev := s.cur.Swap(next)
	s.logger.Info("catalog reloaded",
		logx.String("event", "catalog_reloaded"),
		logx.String("source", s.source),
		logx.String("version", next.Version),
		logx.String("previous_version", prev.Version),
		logx.Int("carriers", len(next.Carriers)),
		logx.Int("services", len(next.Services)),
		logx.Int("offers", len(next.Offers)),
	)
	return next, nil
}
