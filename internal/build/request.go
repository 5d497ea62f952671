package build

import (
	"fmt"
	"sort"

	"github.com/StinkyLord/ibuildhw/internal/model"
)

// BuildRequest is the flat payload accepted by the remote build store
// (POST /api/builds). Unselected slots are omitted.
type BuildRequest struct {
	Name          string `json:"name"`
	Purpose       string `json:"purpose,omitempty"`
	CPUID         string `json:"cpu_id,omitempty"`
	GPUID         string `json:"gpu_id,omitempty"`
	MotherboardID string `json:"motherboard_id,omitempty"`
	RAMID         string `json:"ram_id,omitempty"`
	PSUID         string `json:"psu_id,omitempty"`
	CaseID        string `json:"case_id,omitempty"`
	StorageID     string `json:"storage_id,omitempty"`
	CoolerID      string `json:"cooler_id,omitempty"`
}

// Request builds the persistence payload for s. When no purpose is given
// the name of the selected purpose profile is used.
func (s State) Request(name, purpose string) BuildRequest {
	id := func(c model.Category) string {
		if comp := s.Get(c); comp != nil {
			return comp.ID
		}
		return ""
	}
	if purpose == "" {
		if p := s.Get(model.CategoryPurpose); p != nil {
			purpose = p.Name
		}
	}
	return BuildRequest{
		Name:          name,
		Purpose:       purpose,
		CPUID:         id(model.CategoryCPU),
		GPUID:         id(model.CategoryGPU),
		MotherboardID: id(model.CategoryMotherboard),
		RAMID:         id(model.CategoryRAM),
		PSUID:         id(model.CategoryPSU),
		CaseID:        id(model.CategoryCase),
		StorageID:     id(model.CategoryStorage),
		CoolerID:      id(model.CategoryCooler),
	}
}

// Recommendation is the part of an optimizer response that can re-seed a
// build: component ids keyed by plural category ("cpus", "gpus", ...).
type Recommendation struct {
	Explanation           string            `json:"explanation"`
	RecommendedComponents map[string]string `json:"recommended_components"`
}

// Reseed applies a recommendation to s through Select, looking each id up
// in the matching catalog. Categories without a catalog or with an id
// missing from it are reported in the returned error; the remaining
// recommendations are still applied.
func Reseed(s State, rec Recommendation, catalogs map[model.Category][]*model.Component) (State, error) {
	keys := make([]string, 0, len(rec.RecommendedComponents))
	for k := range rec.RecommendedComponents {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var missing []string
	for _, key := range keys {
		id := rec.RecommendedComponents[key]
		category, err := model.ParseCategory(key)
		if err != nil {
			missing = append(missing, key)
			continue
		}
		comp := Find(catalogs[category], id)
		if comp == nil {
			missing = append(missing, fmt.Sprintf("%s:%s", category, id))
			continue
		}
		s = s.Select(category, comp)
	}
	if len(missing) > 0 {
		return s, fmt.Errorf("%w: %v", ErrUnknownComponent, missing)
	}
	return s, nil
}

// Find returns the component with the given id, or nil.
func Find(catalog []*model.Component, id string) *model.Component {
	for _, c := range catalog {
		if c != nil && c.ID == id {
			return c
		}
	}
	return nil
}
