// Package menu serves the read-only catalog that cart items point at.
package menu

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/KhaledQasim/group-order-app/internal/domain"
	"github.com/goccy/go-yaml"
	"github.com/samber/lo"
)

//go:embed menu.yaml
var defaultMenu []byte

var ErrDuplicateID = errors.New("duplicate menu item id")

// Catalog keeps menu entries in file order.
type Catalog struct {
	items []domain.MenuItem
	byID  map[string]int
}

// Default parses the embedded menu.
func Default() (*Catalog, error) {
	return Parse(defaultMenu)
}

func Parse(data []byte) (*Catalog, error) {
	var items []domain.MenuItem
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse menu: %w", err)
	}
	c := &Catalog{items: items, byID: make(map[string]int, len(items))}
	for i, it := range items {
		if _, dup := c.byID[it.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, it.ID)
		}
		c.byID[it.ID] = i
	}
	return c, nil
}

func (c *Catalog) Items() []domain.MenuItem {
	out := make([]domain.MenuItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Catalog) Lookup(id string) (domain.MenuItem, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.MenuItem{}, false
	}
	return c.items[i], true
}

// Categories lists distinct categories in first-seen order.
func (c *Catalog) Categories() []string {
	return lo.Uniq(lo.Map(c.items, func(it domain.MenuItem, _ int) string {
		return it.Category
	}))
}
