package domain

// MenuItem is a read-only catalog entry. Cart items reference it by ID.
type MenuItem struct {
	ID             string             `json:"id" yaml:"id"`
	Name           string             `json:"name" yaml:"name"`
	Description    string             `json:"description" yaml:"description"`
	Price          float64            `json:"price" yaml:"price"`
	Image          string             `json:"image" yaml:"image"`
	Category       string             `json:"category" yaml:"category"`
	Sizes          map[string]float64 `json:"sizes,omitempty" yaml:"sizes,omitempty"`
	AvailableSizes []string           `json:"availableSizes,omitempty" yaml:"available_sizes,omitempty"`
}

// PriceFor resolves the unit price for an optional size variant.
func (m MenuItem) PriceFor(size string) (float64, bool) {
	if size == "" {
		return m.Price, true
	}
	p, ok := m.Sizes[size]
	return p, ok
}
