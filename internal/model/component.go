// Package model defines the catalog data structures used by the build engine.
package model

// Component is one catalog entry. Category-specific fields live in Attrs,
// whose concrete type is determined by Category.
type Component struct {
	ID       string   // Opaque identifier, stable across requests
	Name     string   // Display name; never used for matching
	Category Category // Slot this component fills
	Brand    string   // Manufacturer, if known
	Price    Price    // Whole currency units, 0 when unknown

	Attrs Attributes
}

// Attributes is implemented by exactly one struct per category.
type Attributes interface {
	category() Category
}

type CPUAttrs struct {
	Socket    string
	Cores     int
	Threads   int
	BaseClock float64
	Cache     float64
}

type MotherboardAttrs struct {
	Socket     string
	FormFactor string
	Chipset    string
	MemoryType string
}

type GPUAttrs struct {
	Memory             string
	Interface          string
	BaseClock          float64
	RecommendedWattage Watts
	PowerConsumption   Watts
}

type PSUAttrs struct {
	Wattage    Watts
	Efficiency string
}

type CaseAttrs struct {
	FormFactor  string
	PowerSupply string
	Color       string
}

type RAMAttrs struct {
	Type       string
	MemoryType string
	Capacity   float64
	Speed      float64
	Latency    string
}

type StorageAttrs struct {
	Type       string
	FormFactor string
	Interface  string
	Capacity   float64
}

type CoolerAttrs struct {
	Type  string
	Color string
	Size  float64
}

// PurposeAttrs marks a non-physical usage profile.
type PurposeAttrs struct{}

// ExtraAttrs carries nothing; extras are never constrained.
type ExtraAttrs struct{}

func (CPUAttrs) category() Category         { return CategoryCPU }
func (MotherboardAttrs) category() Category { return CategoryMotherboard }
func (GPUAttrs) category() Category         { return CategoryGPU }
func (PSUAttrs) category() Category         { return CategoryPSU }
func (CaseAttrs) category() Category        { return CategoryCase }
func (RAMAttrs) category() Category         { return CategoryRAM }
func (StorageAttrs) category() Category     { return CategoryStorage }
func (CoolerAttrs) category() Category      { return CategoryCooler }
func (PurposeAttrs) category() Category     { return CategoryPurpose }
func (ExtraAttrs) category() Category       { return CategoryExtra }

// Key returns a deduplication key unique across categories.
func (c *Component) Key() string {
	return string(c.Category) + ":" + c.ID
}

// Socket returns the raw socket string of a CPU or motherboard.
func (c *Component) Socket() (string, bool) {
	switch a := c.Attrs.(type) {
	case CPUAttrs:
		return a.Socket, a.Socket != ""
	case MotherboardAttrs:
		return a.Socket, a.Socket != ""
	}
	return "", false
}

// FormFactor returns the raw form factor of a motherboard or case.
func (c *Component) FormFactor() (string, bool) {
	switch a := c.Attrs.(type) {
	case MotherboardAttrs:
		return a.FormFactor, a.FormFactor != ""
	case CaseAttrs:
		return a.FormFactor, a.FormFactor != ""
	}
	return "", false
}

// SupplyWattage returns the watts a PSU delivers. A PSU with unknown
// wattage reports 0, true so that it fails every requirement.
func (c *Component) SupplyWattage() (int, bool) {
	if a, ok := c.Attrs.(PSUAttrs); ok {
		return int(a.Wattage), true
	}
	return 0, false
}

// RequiredWattage returns the watts a GPU asks of the PSU, preferring the
// vendor recommendation over raw board power. Unknown draw is 0, true.
func (c *Component) RequiredWattage() (int, bool) {
	a, ok := c.Attrs.(GPUAttrs)
	if !ok {
		return 0, false
	}
	if a.RecommendedWattage > 0 {
		return int(a.RecommendedWattage), true
	}
	return int(a.PowerConsumption), true
}

// NewExtra returns a free-form extra. Extras have no catalog, so the id
// doubles as the display name.
func NewExtra(id string) *Component {
	return &Component{ID: id, Name: id, Category: CategoryExtra, Attrs: ExtraAttrs{}}
}
