package build

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/StinkyLord/ibuildhw/internal/model"
)

// Sheet is the on-disk form of a build: component ids keyed by category.
// It is edited by the CLI and hydrated into a State against fetched
// catalogs.
//
//	name: Streaming rig
//	purpose: 1440p Gaming
//	selections:
//	  cpu: "12"
//	  motherboard: "7"
type Sheet struct {
	Name       string            `yaml:"name,omitempty"`
	Purpose    string            `yaml:"purpose,omitempty"`
	Selections map[string]string `yaml:"selections,omitempty"`
}

// LoadSheet reads a sheet from path. A missing file yields an empty sheet.
func LoadSheet(path string) (*Sheet, error) {
	sheet := &Sheet{Selections: map[string]string{}}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return sheet, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read build sheet %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, sheet); err != nil {
		return nil, fmt.Errorf("failed to parse build sheet %q: %w", path, err)
	}
	if sheet.Selections == nil {
		sheet.Selections = map[string]string{}
	}

	// Normalize keys so "cpus" or "CPU" written by hand still resolve.
	normalized := make(map[string]string, len(sheet.Selections))
	for key, id := range sheet.Selections {
		category, err := model.ParseCategory(key)
		if err != nil {
			return nil, fmt.Errorf("build sheet %q: %w", path, err)
		}
		normalized[string(category)] = id
	}
	sheet.Selections = normalized
	return sheet, nil
}

// Save writes the sheet to path, creating parent directories.
func (s *Sheet) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal build sheet: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory for %q: %w", path, err)
		}
	}
	return os.WriteFile(path, data, 0644)
}

// Set records id for category; an empty id clears the slot.
func (s *Sheet) Set(category model.Category, id string) {
	if s.Selections == nil {
		s.Selections = map[string]string{}
	}
	if id == "" {
		delete(s.Selections, string(category))
		return
	}
	s.Selections[string(category)] = id
}

// Categories returns the categories with a recorded selection, sorted.
func (s *Sheet) Categories() []model.Category {
	out := make([]model.Category, 0, len(s.Selections))
	for key := range s.Selections {
		out = append(out, model.Category(key))
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// State hydrates the sheet into a State by looking ids up in catalogs.
// Purpose selections resolve against the fixed usage profiles and extras
// are taken as written. Ids that cannot be found are skipped and reported
// together in the error.
func (s *Sheet) State(catalogs map[model.Category][]*model.Component) (State, error) {
	state := Empty()
	var missing []string
	for _, category := range s.Categories() {
		id := s.Selections[string(category)]
		var comp *model.Component
		switch category {
		case model.CategoryPurpose:
			comp = Find(model.PurposeProfiles(), id)
		case model.CategoryExtra:
			comp = model.NewExtra(id)
		default:
			comp = Find(catalogs[category], id)
		}
		if comp == nil {
			missing = append(missing, fmt.Sprintf("%s:%s", category, id))
			continue
		}
		state = state.Select(category, comp)
	}
	if len(missing) > 0 {
		return state, fmt.Errorf("%w: %v", ErrUnknownComponent, missing)
	}
	return state, nil
}
