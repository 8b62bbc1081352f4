package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ItemID is the stable identity of a dock item. It never derives from the payload:
// two items with the same label/icon/color are still different items.
type ItemID string

func (id ItemID) String() string { return string(id) }

// NewItemID returns a fresh random id.
func NewItemID() ItemID {
	return ItemID(uuid.NewString())
}

type Item struct {
	ID    ItemID `json:"id" toml:"id"`
	Label string `json:"label" toml:"label"`
	Icon  string `json:"icon,omitempty" toml:"icon,omitempty"`
	Color string `json:"color,omitempty" toml:"color,omitempty"`
}

// Catalog maps ids to payloads. It is built once from the initial sequence and is
// read-only afterwards; reordering never touches it.
type Catalog struct {
	byID map[ItemID]Item
	ids  []ItemID
}

type DuplicateIDError struct {
	ID ItemID
}

func (e DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate item id: %s", e.ID)
}

// NewCatalog indexes items by id. Items without an id get one assigned; the returned
// slice reflects those assignments in input order.
func NewCatalog(items []Item) (*Catalog, []Item, error) {
	c := &Catalog{byID: make(map[ItemID]Item, len(items))}
	out := make([]Item, 0, len(items))
	for _, it := range items {
		it.ID = ItemID(strings.TrimSpace(string(it.ID)))
		if it.ID == "" {
			it.ID = NewItemID()
		}
		if _, ok := c.byID[it.ID]; ok {
			return nil, nil, DuplicateIDError{ID: it.ID}
		}
		c.byID[it.ID] = it
		c.ids = append(c.ids, it.ID)
		out = append(out, it)
	}
	return c, out, nil
}

func (c *Catalog) Get(id ItemID) (Item, bool) {
	if c == nil {
		return Item{}, false
	}
	it, ok := c.byID[id]
	return it, ok
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.ids)
}

// IDs returns the ids in catalog (initial) order.
func (c *Catalog) IDs() []ItemID {
	if c == nil {
		return nil
	}
	return append([]ItemID(nil), c.ids...)
}
