// Package persona holds the avatar catalog, the matcher that picks an avatar
// for a context/emotion pair, and the snapshot store that lets the catalog be
// replaced while requests are in flight.
package persona

import (
	"fmt"

	chatErrors "github.com/mantonx/cinebot/internal/modules/chatbotmodule/errors"
	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/types"
)

// Catalog is an ordered, read-only set of personas. Order matters: the
// matcher breaks ties in favour of the earlier record.
type Catalog struct {
	records []types.PersonaRecord
	index   map[string]int
}

// NewCatalog copies records into a catalog. It does not validate; use
// Validate first when the records come from outside the process.
func NewCatalog(records []types.PersonaRecord) *Catalog {
	c := &Catalog{
		records: make([]types.PersonaRecord, len(records)),
		index:   make(map[string]int, len(records)),
	}
	for i, r := range records {
		r.Contexts = append([]types.Context(nil), r.Contexts...)
		r.Emotions = append([]types.Emotion(nil), r.Emotions...)
		c.records[i] = r
		if _, dup := c.index[r.ID]; !dup {
			c.index[r.ID] = i
		}
	}
	return c
}

// Records returns the personas in catalog order. The slice is shared and
// must not be modified.
func (c *Catalog) Records() []types.PersonaRecord {
	if c == nil {
		return nil
	}
	return c.records
}

// Len returns the number of personas.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.records)
}

// Get looks up a persona by id.
func (c *Catalog) Get(id string) (types.PersonaRecord, bool) {
	if c == nil {
		return types.PersonaRecord{}, false
	}
	i, ok := c.index[id]
	if !ok {
		return types.PersonaRecord{}, false
	}
	return c.records[i], true
}

// Avatar returns the display descriptor for id, falling back to the default
// persona and then to a bare descriptor carrying only the id.
func (c *Catalog) Avatar(id string) types.AvatarDescriptor {
	if p, ok := c.Get(id); ok {
		return p.Avatar()
	}
	if p, ok := c.Get(types.DefaultPersonaID); ok {
		return p.Avatar()
	}
	return types.AvatarDescriptor{ID: id}
}

// Validate checks the catalog invariants: at least one persona, every persona
// has an id plus one context and one emotion, ids are unique, and at least one
// persona covers the general context.
func Validate(records []types.PersonaRecord) error {
	const op = "validate_catalog"

	if len(records) == 0 {
		return chatErrors.CatalogError(op, chatErrors.ErrEmptyCatalog)
	}

	seen := make(map[string]bool, len(records))
	hasGeneral := false
	for i, r := range records {
		switch {
		case r.ID == "":
			return chatErrors.CatalogError(op, fmt.Errorf("record %d has no id: %w", i, chatErrors.ErrInvalidPersona)).
				WithDetail("position", i)
		case len(r.Contexts) == 0:
			return chatErrors.CatalogError(op, fmt.Errorf("%s has no contexts: %w", r.ID, chatErrors.ErrInvalidPersona)).
				WithDetail("persona_id", r.ID)
		case len(r.Emotions) == 0:
			return chatErrors.CatalogError(op, fmt.Errorf("%s has no emotions: %w", r.ID, chatErrors.ErrInvalidPersona)).
				WithDetail("persona_id", r.ID)
		case seen[r.ID]:
			return chatErrors.CatalogError(op, fmt.Errorf("%s: %w", r.ID, chatErrors.ErrDuplicatePersona)).
				WithDetail("persona_id", r.ID)
		}
		seen[r.ID] = true
		if r.HasContext(types.ContextGeneral) {
			hasGeneral = true
		}
	}

	if !hasGeneral {
		return chatErrors.CatalogError(op, chatErrors.ErrNoGeneralPersona)
	}
	return nil
}
