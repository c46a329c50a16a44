// Package service runs board operations against a session store, with
// placement results memoized in a cache.
//
// The Service is shared by the HTTP server and the CLI. Each operation loads
// the board from its session, applies one state transition, and stores the
// result. Operations on the same board are serialized; different boards
// proceed in parallel.
//
//	svc := service.New(session.NewMemoryStore(), cache.NewMemoryCache(0), nil, logger)
//	v, err := svc.Create(ctx, service.CreateRequest{Size: 9})
//	v, changed, err := svc.DragEnd(ctx, v.ID, "4", "0")
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridboard/pkg/board"
	"github.com/matzehuels/gridboard/pkg/cache"
	errs "github.com/matzehuels/gridboard/pkg/errors"
	"github.com/matzehuels/gridboard/pkg/session"
)

// Service executes board operations with session persistence and placement
// caching.
type Service struct {
	Store  session.Store
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is the session lifetime, extended on every write.
	TTL time.Duration

	// BoardSize is the number of random components a board gets when a
	// create request names neither components nor a size.
	BoardSize int

	locks sync.Map // session ID -> *sync.Mutex
}

// New creates a service. A nil cache disables caching; a nil keyer uses
// [cache.DefaultKeyer]; a nil logger uses the default logger.
func New(store session.Store, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Service {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		Store:     store,
		Cache:     c,
		Keyer:     keyer,
		Logger:    logger,
		TTL:       session.DefaultTTL,
		BoardSize: board.DefaultSize,
	}
}

// Close closes the store and the cache.
func (s *Service) Close() error {
	return errors.Join(s.Store.Close(), s.Cache.Close())
}

// lock serializes operations on one session. IDs that cannot name a
// session are rejected before a mutex is stored for them.
func (s *Service) lock(id string) (func(), error) {
	if !session.ValidID(id) {
		return nil, errs.New(errs.ErrCodeSessionNotFound, "board %q not found", id)
	}
	m, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	mu := m.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock, nil
}

// forget drops the mutex of a session that no longer exists.
func (s *Service) forget(id string, err error) {
	if errs.Is(err, errs.ErrCodeSessionNotFound) || errs.Is(err, errs.ErrCodeSessionExpired) {
		s.locks.Delete(id)
	}
}

// load fetches a session and rebuilds its board.
func (s *Service) load(ctx context.Context, id string) (*session.Session, *board.Board, error) {
	if !session.ValidID(id) {
		return nil, nil, errs.New(errs.ErrCodeSessionNotFound, "board %q not found", id)
	}
	sess, err := s.Store.Get(ctx, id)
	if errors.Is(err, session.ErrExpired) {
		return nil, nil, errs.New(errs.ErrCodeSessionExpired, "board %q has expired", id)
	}
	if err != nil {
		return nil, nil, errs.Wrap(errs.ErrCodeInternal, err, "load board %s", id)
	}
	if sess == nil {
		return nil, nil, errs.New(errs.ErrCodeSessionNotFound, "board %q not found", id)
	}

	b, err := board.Restore(sess.Board, board.WithPlacer(s.placer(ctx, sess.Board.Columns)))
	if err != nil {
		return nil, nil, errs.Wrap(errs.ErrCodeInternal, err, "restore board %s", id)
	}
	return sess, b, nil
}

// save stores b into sess and extends its expiry.
func (s *Service) save(ctx context.Context, sess *session.Session, b *board.Board) error {
	sess.Update(b.Snapshot(), s.TTL)
	if err := s.Store.Set(ctx, sess); err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "save board %s", sess.ID)
	}
	return nil
}

// update runs fn on the board under the session lock and saves the result
// when fn reports a change.
func (s *Service) update(ctx context.Context, id string, fn func(*board.Board) (bool, error)) (*View, error) {
	unlock, err := s.lock(id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	sess, b, err := s.load(ctx, id)
	if err != nil {
		s.forget(id, err)
		return nil, err
	}
	changed, err := fn(b)
	if err != nil {
		return nil, err
	}
	if changed {
		if err := s.save(ctx, sess, b); err != nil {
			return nil, err
		}
	}
	return newView(sess, b), nil
}
