// Package inventory defines the pantry inventory records of a user
package inventory

import (
	"errors"
	"strings"
	"time"
)

// DefaultUserID is the inventory owner used when a request carries no credentials
const DefaultUserID = "default_user"

// ErrEmptyIngredientName is returned when an item has no name
var ErrEmptyIngredientName = errors.New("ingredient name is required")

// Item is a single pantry entry, keyed by ingredient name
type Item struct {
	IngredientName string    `json:"ingredient_name"`
	Quantity       *string   `json:"quantity,omitempty"`
	AddedAt        time.Time `json:"added_at"`

	// Pending marks an optimistic entry not yet confirmed by the server.
	// It is never sent over the wire.
	Pending bool `json:"-"`
}

// UserInventory is the full inventory snapshot of one user
type UserInventory struct {
	UserID    string    `json:"user_id"`
	Items     []Item    `json:"items"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AddItemRequest adds (or updates) an item
type AddItemRequest struct {
	IngredientName string  `json:"ingredient_name"`
	Quantity       *string `json:"quantity,omitempty"`
}

// Validate checks the request before it is sent
func (r AddItemRequest) Validate() error {
	if strings.TrimSpace(r.IngredientName) == "" {
		return ErrEmptyIngredientName
	}
	return nil
}

// QuantityText returns the quantity or an empty string
func (i Item) QuantityText() string {
	if i.Quantity == nil {
		return ""
	}
	return *i.Quantity
}

// Matches reports whether the item is keyed by name (case-insensitive)
func (i Item) Matches(name string) bool {
	return strings.EqualFold(strings.TrimSpace(i.IngredientName), strings.TrimSpace(name))
}

// Find returns the item with the given name
func (inv *UserInventory) Find(name string) (Item, bool) {
	if inv == nil {
		return Item{}, false
	}
	for _, item := range inv.Items {
		if item.Matches(name) {
			return item, true
		}
	}
	return Item{}, false
}

// Names returns the lower-cased ingredient names held in the inventory
func (inv *UserInventory) Names() []string {
	if inv == nil {
		return nil
	}
	names := make([]string, 0, len(inv.Items))
	for _, item := range inv.Items {
		names = append(names, strings.ToLower(strings.TrimSpace(item.IngredientName)))
	}
	return names
}

// Clone returns a deep copy so snapshots can be handed out safely
func (inv *UserInventory) Clone() *UserInventory {
	if inv == nil {
		return nil
	}
	cp := *inv
	cp.Items = append([]Item(nil), inv.Items...)
	return &cp
}

// WithItem returns a copy with item appended. Duplicates are not checked;
// the next server refresh reconciles them.
func (inv *UserInventory) WithItem(item Item) *UserInventory {
	cp := inv.Clone()
	if cp == nil {
		cp = &UserInventory{}
	}
	cp.Items = append(cp.Items, item)
	cp.UpdatedAt = item.AddedAt
	return cp
}

// WithoutItem returns a copy with every item named name removed
func (inv *UserInventory) WithoutItem(name string) *UserInventory {
	if inv == nil {
		return nil
	}
	cp := inv.Clone()
	kept := cp.Items[:0]
	for _, item := range cp.Items {
		if !item.Matches(name) {
			kept = append(kept, item)
		}
	}
	cp.Items = kept
	return cp
}

// PendingCount returns how many items are still unconfirmed
func (inv *UserInventory) PendingCount() int {
	if inv == nil {
		return 0
	}
	n := 0
	for _, item := range inv.Items {
		if item.Pending {
			n++
		}
	}
	return n
}
