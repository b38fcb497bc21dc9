package achievement

import "fmt"

// Definition describes a single achievement in the catalog.
type Definition struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Catalog is the fixed set of achievements known to the engine.
// Built once at startup, never mutated afterwards.
type Catalog struct {
	defs []Definition
	byID map[string]Definition
}

// NewCatalog builds a catalog from definitions in declaration order.
// Returns an error on duplicate or empty IDs.
func NewCatalog(defs []Definition) (*Catalog, error) {
	c := &Catalog{
		defs: make([]Definition, len(defs)),
		byID: make(map[string]Definition, len(defs)),
	}
	copy(c.defs, defs)

	for _, d := range c.defs {
		if d.ID == "" {
			return nil, fmt.Errorf("achievement definition %q has empty ID", d.Name)
		}
		if _, dup := c.byID[d.ID]; dup {
			return nil, fmt.Errorf("duplicate achievement ID: %s", d.ID)
		}
		c.byID[d.ID] = d
	}

	return c, nil
}

// DefaultCatalog returns the site's achievement catalog.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog([]Definition{
		{ID: "konami", Name: "Old School", Description: "Entered the Konami code", Icon: "🎮"},
		{ID: "rapid_clicker", Name: "Trigger Happy", Description: "Three clicks in half a second", Icon: "⚡"},
		{ID: "hacker", Name: "Hacker", Description: "Found the hidden phrase", Icon: "🕵️"},
		{ID: "deep_scroller", Name: "Deep Diver", Description: "Scrolled all the way down", Icon: "🌊"},
		{ID: "time_traveler", Name: "Sticking Around", Description: "Stayed for three minutes", Icon: "⏳"},
		{ID: "shake_master", Name: "Shake It Off", Description: "Gave the device a good shake", Icon: "📳"},
		{ID: "double_tapper", Name: "Double Trouble", Description: "Double-tapped like a pro", Icon: "👆"},
	})
	if err != nil {
		// The default catalog is a compile-time constant in all but syntax.
		panic(err)
	}
	return c
}

// Lookup returns the definition for an ID, if it exists.
func (c *Catalog) Lookup(id string) (Definition, bool) {
	d, ok := c.byID[id]
	return d, ok
}

// Contains reports whether the catalog defines the given ID.
func (c *Catalog) Contains(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Definitions returns the catalog entries in declaration order.
// The returned slice is a copy; mutating it does not affect the catalog.
func (c *Catalog) Definitions() []Definition {
	out := make([]Definition, len(c.defs))
	copy(out, c.defs)
	return out
}

// IDs returns the catalog IDs in declaration order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.defs))
	for i, d := range c.defs {
		ids[i] = d.ID
	}
	return ids
}

// Size returns the number of achievements in the catalog.
func (c *Catalog) Size() int {
	return len(c.defs)
}
