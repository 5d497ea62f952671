package model

import (
	"fmt"
	"strings"
)

// Category identifies a build slot and the catalog that fills it.
type Category string

const (
	CategoryCPU         Category = "cpu"
	CategoryMotherboard Category = "motherboard"
	CategoryGPU         Category = "gpu"
	CategoryRAM         Category = "ram"
	CategoryStorage     Category = "storage"
	CategoryPSU         Category = "psu"
	CategoryCase        Category = "case"
	CategoryCooler      Category = "cooler"
	CategoryExtra       Category = "extra"
	CategoryPurpose     Category = "purpose"
)

// Categories lists every slot in display order.
var Categories = []Category{
	CategoryCase,
	CategoryMotherboard,
	CategoryCPU,
	CategoryRAM,
	CategoryGPU,
	CategoryStorage,
	CategoryCooler,
	CategoryPSU,
	CategoryExtra,
	CategoryPurpose,
}

// HardwareCategories are the slots backed by a remote catalog.
var HardwareCategories = []Category{
	CategoryCase,
	CategoryMotherboard,
	CategoryCPU,
	CategoryRAM,
	CategoryGPU,
	CategoryStorage,
	CategoryCooler,
	CategoryPSU,
}

var plurals = map[Category]string{
	CategoryCPU:         "cpus",
	CategoryMotherboard: "motherboards",
	CategoryGPU:         "gpus",
	CategoryRAM:         "ram",
	CategoryStorage:     "storage",
	CategoryPSU:         "psus",
	CategoryCase:        "cases",
	CategoryCooler:      "coolers",
	CategoryExtra:       "extras",
	CategoryPurpose:     "purpose",
}

// aliases maps alternative spellings (plural API names and the slot keys
// used by the web UI) to their category.
var aliases = map[string]Category{
	"hdd":        CategoryStorage,
	"ssd":        CategoryStorage,
	"cpu-cooler": CategoryCooler,
	"chassis":    CategoryCase,
	"extras":     CategoryExtra,
}

// Plural returns the path segment used by the catalog API.
func (c Category) Plural() string {
	if p, ok := plurals[c]; ok {
		return p
	}
	return string(c)
}

// HasCatalog reports whether the category is served by the catalog API.
func (c Category) HasCatalog() bool {
	switch c {
	case CategoryPurpose, CategoryExtra:
		return false
	}
	_, ok := plurals[c]
	return ok
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := plurals[c]
	return ok
}

func (c Category) String() string { return string(c) }

// ParseCategory accepts singular, plural and alias spellings in any case.
func ParseCategory(s string) (Category, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if c := Category(key); c.Valid() {
		return c, nil
	}
	for c, p := range plurals {
		if p == key {
			return c, nil
		}
	}
	if c, ok := aliases[key]; ok {
		return c, nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}
