package model

// Preset is a fixed quantity option offered as a one-click alternative to
// free-text order entry.
type Preset struct {
	Key   string `yaml:"key"`
	Label string `yaml:"label"`
}

// DefaultPresets mirrors the store's stock diamond packs plus the custom
// sentinel, which means the user will specify the quantity in follow-up text.
func DefaultPresets() []Preset {
	return []Preset{
		{Key: "100", Label: "100 Diamond"},
		{Key: "210", Label: "210 Diamond"},
		{Key: "500", Label: "500 Diamond"},
		{Key: "custom", Label: "Custom Request (User Will Type)"},
	}
}

// Catalog resolves preset keys to human-readable descriptions.
type Catalog struct {
	presets []Preset
	byKey   map[string]string
}

// NewCatalog constructs a catalog from an ordered preset list.
func NewCatalog(presets []Preset) *Catalog {
	byKey := make(map[string]string, len(presets))
	for _, p := range presets {
		byKey[p.Key] = p.Label
	}
	return &Catalog{presets: presets, byKey: byKey}
}

// Resolve maps a preset key to its label. Unknown keys pass through
// unchanged: the input is then treated as free-form order text.
func (c *Catalog) Resolve(descriptionOrKey string) string {
	if label, ok := c.byKey[descriptionOrKey]; ok {
		return label
	}
	return descriptionOrKey
}

// Presets returns the catalog entries in declaration order.
func (c *Catalog) Presets() []Preset {
	return c.presets
}
