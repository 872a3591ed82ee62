package model

import "time"

type EntityType string

const (
	EntityTypeMetal    EntityType = "metal"
	EntityTypeGemstone EntityType = "gemstone"
)

const (
	UnitGram  = "g"
	UnitCarat = "ct"
)

func (t EntityType) Valid() bool {
	return t == EntityTypeMetal || t == EntityTypeGemstone
}

// Unit is the measurement unit a variant of this entity type is priced in.
func (t EntityType) Unit() string {
	switch t {
	case EntityTypeMetal:
		return UnitGram
	case EntityTypeGemstone:
		return UnitCarat
	default:
		return ""
	}
}

func (t EntityType) String() string { return string(t) }

// Material is a Metal or Gemstone owning one or more priced variants.
type Material struct {
	// Identifier of the material document.
	ID string
	// Metal or gemstone.
	Type EntityType
	// Human-readable name, e.g. "Gold" or "Diamond".
	Name        string
	Description string
	// Priced tiers of the material.
	Variants  []Variant
	CreatedAt *time.Time
	UpdatedAt *time.Time
}

// Variant is a named pricing tier of a material, e.g. "22K Gold" or "VVS1 Diamond".
type Variant struct {
	ID   string
	Name string
	// Metal purity descriptor, e.g. "91.6%".
	Purity string
	// Gemstone descriptors.
	Cut     string
	Clarity string
	Color   string
	// Price per gram for metals, per carat for gemstones. Never negative.
	UnitPrice float64
	Unit      string
	// Refreshed on every price update.
	LastUpdated *time.Time
}

func (m *Material) Variant(id string) (*Variant, bool) {
	for i := range m.Variants {
		if m.Variants[i].ID == id {
			return &m.Variants[i], true
		}
	}
	return nil, false
}
