// Package session keeps each session's canonical transaction table in
// memory between the upload and the dashboard request. Tables are stored
// as mapping-per-row records plus a column order, the same shape any
// other session backend would hold, and rebuilt on load.
package session

import (
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/insightdelivered/statement-dashboard/internal/table"
)

// CookieName is the session cookie carrying the store key.
const CookieName = "statement_session"

type entry struct {
	columns []string
	records []map[string]any
}

// Store is an in-memory, TTL-bounded table store. There is no
// persistence: an expired session simply has no data.
type Store struct {
	cache *gocache.Cache
}

// NewStore creates a store whose entries expire after ttl.
func NewStore(ttl time.Duration) *Store {
	return &Store{cache: gocache.New(ttl, ttl)}
}

// NewID returns a fresh session identifier.
func NewID() string {
	return uuid.NewString()
}

// Save stores the table under the session id, replacing any previous
// table for that session.
func (s *Store) Save(id string, t *table.Table) {
	s.cache.SetDefault(id, entry{
		columns: t.Columns(),
		records: t.Records(),
	})
}

// Load rebuilds the session's table. The second return is false when the
// session has no stored table (never uploaded, or expired).
func (s *Store) Load(id string) (*table.Table, bool) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, false
	}
	e := v.(entry)
	return table.FromRecords(e.columns, e.records), true
}

// Clear drops the session's table, if any.
func (s *Store) Clear(id string) {
	s.cache.Delete(id)
}
