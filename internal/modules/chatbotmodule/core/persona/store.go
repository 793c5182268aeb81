package persona

import (
	"sync/atomic"

	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/types"
)

// Store publishes catalog snapshots. Readers always see a complete catalog,
// either the one before a Replace or the one after it.
type Store struct {
	current atomic.Pointer[Catalog]
}

// NewStore creates a store serving c. A nil c serves an empty catalog, which
// the matcher answers with the default persona.
func NewStore(c *Catalog) *Store {
	s := &Store{}
	if c == nil {
		c = NewCatalog(nil)
	}
	s.current.Store(c)
	return s
}

// Load returns the current snapshot.
func (s *Store) Load() *Catalog {
	return s.current.Load()
}

// Replace validates records and publishes them as the new snapshot. On a
// validation error the previous snapshot stays in place.
func (s *Store) Replace(records []types.PersonaRecord) (*Catalog, error) {
	if err := Validate(records); err != nil {
		return nil, err
	}
	c := NewCatalog(records)
	s.current.Store(c)
	return c, nil
}
