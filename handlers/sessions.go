package handlers

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/pocketbase/pocketbase/core"

	"gridadmin/collections"
	"gridadmin/datagrid"
	"gridadmin/services"
)

// Session is one client's live grid. Handlers hold mu for the whole request
// since a Grid is not safe for concurrent use.
type Session struct {
	mu   sync.Mutex
	Grid *datagrid.Grid[datagrid.MapRow]
	Def  *services.GridDef

	// SelectedCount and OpenedKey are kept current by the grid callbacks.
	SelectedCount int
	OpenedKey     string
}

// Lock acquires the session for one request.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session.
func (s *Session) Unlock() { s.mu.Unlock() }

// Refresh re-supplies the grid with the current records of its collection.
func (s *Session) Refresh(app core.App) error {
	rows, err := services.LoadRows(app, s.Def)
	if err != nil {
		return err
	}
	s.Grid.SetData(rows)
	return nil
}

// Session limits. Clients that drop cookies get a new id per request, so
// the store is bounded and idle sessions expire.
const (
	maxSessions = 1024
	sessionIdle = 30 * time.Minute
)

// SessionStore keeps one grid per (client, grid name).
type SessionStore struct {
	registry *services.GridRegistry

	mu       sync.Mutex
	sessions *expirable.LRU[string, *Session]
}

// NewSessionStore returns an empty store over the given grid definitions.
func NewSessionStore(registry *services.GridRegistry) *SessionStore {
	return newSessionStore(registry, maxSessions, sessionIdle)
}

func newSessionStore(registry *services.GridRegistry, size int, idle time.Duration) *SessionStore {
	return &SessionStore{
		registry: registry,
		sessions: expirable.NewLRU[string, *Session](size, nil, idle),
	}
}

// Len reports the number of live sessions.
func (s *SessionStore) Len() int { return s.sessions.Len() }

// Registry returns the grid definitions the store builds sessions from.
func (s *SessionStore) Registry() *services.GridRegistry { return s.registry }

// Open returns the session of client for the named grid, mounting a new grid
// on first use. Page state persists through the grid_preferences collection.
func (s *SessionStore) Open(app core.App, client, grid string) (*Session, error) {
	def, err := s.registry.Get(grid)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := client + "/" + grid
	if sess, ok := s.sessions.Get(key); ok {
		// Add again to restart the idle timer.
		s.sessions.Add(key, sess)
		return sess, nil
	}

	sess := &Session{Def: def}
	onSelect := func(keys []string, _ []datagrid.MapRow) {
		sess.SelectedCount = len(keys)
	}
	onOpen := func(row datagrid.MapRow) {
		sess.OpenedKey = services.RowID(row)
	}
	opts := def.GridOptions(collections.NewPreferenceStore(app, client), onSelect, onOpen)
	opts.RowClass = func(row datagrid.MapRow) string {
		if sess.OpenedKey != "" && services.RowID(row) == sess.OpenedKey {
			return "row-opened"
		}
		return ""
	}
	sess.Grid = def.NewGrid(nil, opts)

	s.sessions.Add(key, sess)
	return sess, nil
}
