package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// wireComponent is the flat record served by the catalog API. Every
// category shares one JSON shape; fields irrelevant to a category are
// simply absent.
type wireComponent struct {
	ID        json.RawMessage `json:"id"`
	Name      looseString     `json:"name"`
	Brand     looseString     `json:"brand"`
	Price     Price           `json:"price"`
	Socket    looseString     `json:"socket"`
	Form      looseString     `json:"form_factor"`
	Chipset   looseString     `json:"chipset"`
	MemType   looseString     `json:"memory_type"`
	Cores     looseInt        `json:"cores"`
	Threads   looseInt        `json:"threads"`
	BaseClock looseFloat      `json:"base_clock"`
	Cache     looseFloat      `json:"cache"`
	Memory    looseString     `json:"memory"`
	Interface looseString     `json:"interface"`
	RecWatts  Watts           `json:"recommended_wattage"`
	PowerDraw Watts           `json:"power_consumption"`
	Wattage   Watts           `json:"wattage"`
	Eff       looseString     `json:"efficiency"`
	PSUSlot   looseString     `json:"power_supply"`
	Color     looseString     `json:"color"`
	Type      looseString     `json:"type"`
	Latency   looseString     `json:"latency"`
	Capacity  looseFloat      `json:"capacity"`
	Speed     looseFloat      `json:"speed"`
	Size      looseFloat      `json:"size"`
}

// DecodeCatalog decodes a JSON array served for category into components.
// Entries with unusable ids are skipped rather than failing the catalog.
func DecodeCatalog(category Category, data []byte) ([]*Component, error) {
	var raw []wireComponent
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode %s catalog: %w", category.Plural(), err)
	}

	out := make([]*Component, 0, len(raw))
	for i := range raw {
		id := decodeID(raw[i].ID)
		if id == "" {
			continue
		}
		out = append(out, raw[i].toComponent(category, id))
	}
	return out, nil
}

// EncodeCatalog is the inverse of DecodeCatalog, used by the catalog cache.
func EncodeCatalog(components []*Component) ([]byte, error) {
	raw := make([]map[string]any, 0, len(components))
	for _, c := range components {
		raw = append(raw, c.wireFields())
	}
	return json.Marshal(raw)
}

// decodeID accepts string or numeric ids.
func decodeID(msg json.RawMessage) string {
	if len(msg) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(msg, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(msg, &n); err == nil {
		return n.String()
	}
	return ""
}

func (w *wireComponent) toComponent(category Category, id string) *Component {
	c := &Component{
		ID:       id,
		Name:     string(w.Name),
		Category: category,
		Brand:    string(w.Brand),
		Price:    w.Price,
	}

	switch category {
	case CategoryCPU:
		c.Attrs = CPUAttrs{
			Socket:    string(w.Socket),
			Cores:     int(w.Cores),
			Threads:   int(w.Threads),
			BaseClock: float64(w.BaseClock),
			Cache:     float64(w.Cache),
		}
	case CategoryMotherboard:
		c.Attrs = MotherboardAttrs{
			Socket:     string(w.Socket),
			FormFactor: string(w.Form),
			Chipset:    string(w.Chipset),
			MemoryType: string(w.MemType),
		}
	case CategoryGPU:
		c.Attrs = GPUAttrs{
			Memory:             string(w.Memory),
			Interface:          string(w.Interface),
			BaseClock:          float64(w.BaseClock),
			RecommendedWattage: w.RecWatts,
			PowerConsumption:   w.PowerDraw,
		}
	case CategoryPSU:
		c.Attrs = PSUAttrs{
			Wattage:    w.Wattage,
			Efficiency: string(w.Eff),
		}
	case CategoryCase:
		c.Attrs = CaseAttrs{
			FormFactor:  string(w.Form),
			PowerSupply: string(w.PSUSlot),
			Color:       string(w.Color),
		}
	case CategoryRAM:
		c.Attrs = RAMAttrs{
			Type:       string(w.Type),
			MemoryType: string(w.MemType),
			Capacity:   float64(w.Capacity),
			Speed:      float64(w.Speed),
			Latency:    string(w.Latency),
		}
	case CategoryStorage:
		c.Attrs = StorageAttrs{
			Type:       string(w.Type),
			FormFactor: string(w.Form),
			Interface:  string(w.Interface),
			Capacity:   float64(w.Capacity),
		}
	case CategoryCooler:
		c.Attrs = CoolerAttrs{
			Type:  string(w.Type),
			Color: string(w.Color),
			Size:  float64(w.Size),
		}
	case CategoryPurpose:
		c.Attrs = PurposeAttrs{}
	default:
		c.Attrs = ExtraAttrs{}
	}
	return c
}

// wireFields flattens c back into the API record shape, omitting empty
// values so a round trip through the cache is lossless.
func (c *Component) wireFields() map[string]any {
	m := map[string]any{
		"id":    c.ID,
		"name":  c.Name,
		"price": int(c.Price),
	}
	put := func(key, v string) {
		if v != "" {
			m[key] = v
		}
	}
	putNum := func(key string, v float64) {
		if v != 0 {
			m[key] = v
		}
	}
	put("brand", c.Brand)

	switch a := c.Attrs.(type) {
	case CPUAttrs:
		put("socket", a.Socket)
		putNum("cores", float64(a.Cores))
		putNum("threads", float64(a.Threads))
		putNum("base_clock", a.BaseClock)
		putNum("cache", a.Cache)
	case MotherboardAttrs:
		put("socket", a.Socket)
		put("form_factor", a.FormFactor)
		put("chipset", a.Chipset)
		put("memory_type", a.MemoryType)
	case GPUAttrs:
		put("memory", a.Memory)
		put("interface", a.Interface)
		putNum("base_clock", a.BaseClock)
		putNum("recommended_wattage", float64(a.RecommendedWattage))
		putNum("power_consumption", float64(a.PowerConsumption))
	case PSUAttrs:
		putNum("wattage", float64(a.Wattage))
		put("efficiency", a.Efficiency)
	case CaseAttrs:
		put("form_factor", a.FormFactor)
		put("power_supply", a.PowerSupply)
		put("color", a.Color)
	case RAMAttrs:
		put("type", a.Type)
		put("memory_type", a.MemoryType)
		putNum("capacity", a.Capacity)
		putNum("speed", a.Speed)
		put("latency", a.Latency)
	case StorageAttrs:
		put("type", a.Type)
		put("form_factor", a.FormFactor)
		put("interface", a.Interface)
		putNum("capacity", a.Capacity)
	case CoolerAttrs:
		put("type", a.Type)
		put("color", a.Color)
		putNum("size", a.Size)
	}
	return m
}

// Properties returns the category-specific fields of c keyed by their API
// names, without id, name, brand and price.
func (c *Component) Properties() map[string]any {
	m := c.wireFields()
	for _, k := range []string{"id", "name", "brand", "price"} {
		delete(m, k)
	}
	return m
}
