// Package catalog loads the case and skin reference data from JSON,
// validates it, and seeds it into the database.
package catalog

import (
	"fmt"

	"github.com/casefall/casefall/internal/domain"
	"github.com/casefall/casefall/internal/utils"
	"github.com/casefall/casefall/internal/validation"
)

// SkinDef is one skin in the catalog file. Values are in cents.
type SkinDef struct {
	Name        string `json:"name"`
	WeaponType  string `json:"weapon_type"`
	Rarity      string `json:"rarity"`
	MinValue    int64  `json:"min_value"`
	MaxValue    int64  `json:"max_value"`
	ImageURL    string `json:"image_url,omitempty"`
	Description string `json:"description,omitempty"`
}

// SlotDef is one drop table row of a case, referencing a skin by name.
type SlotDef struct {
	Skin   string  `json:"skin"`
	Weight float64 `json:"weight"`
}

// CaseDef is one case in the catalog file. Price is in cents.
type CaseDef struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       int64     `json:"price"`
	ImageURL    string    `json:"image_url,omitempty"`
	Active      bool      `json:"active"`
	Slots       []SlotDef `json:"slots"`
}

// File is the parsed catalog.
type File struct {
	Skins []SkinDef `json:"skins"`
	Cases []CaseDef `json:"cases"`
}

var knownRarities = map[string]struct{}{
	string(domain.RarityConsumer):    {},
	string(domain.RarityIndustrial):  {},
	string(domain.RarityMilSpec):     {},
	string(domain.RarityRestricted):  {},
	string(domain.RarityClassified):  {},
	string(domain.RarityCovert):      {},
	string(domain.RarityRareSpecial): {},
}

// Load reads the catalog file, checks it against the schema, and then runs
// the semantic checks the schema cannot express.
func Load(path, schemaPath string, v validation.SchemaValidator) (*File, error) {
	if err := v.ValidateFile(path, schemaPath); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}

	var f File
	if err := utils.LoadJSON(path, &f); err != nil {
		return nil, err
	}

	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return &f, nil
}

// Validate checks cross-references and value ranges.
func (f *File) Validate() error {
	skins := make(map[string]SkinDef, len(f.Skins))
	for _, s := range f.Skins {
		if _, dup := skins[s.Name]; dup {
			return fmt.Errorf("duplicate skin %q", s.Name)
		}
		if _, ok := knownRarities[s.Rarity]; !ok {
			return fmt.Errorf("skin %q: unknown rarity %q", s.Name, s.Rarity)
		}
		if s.MinValue < 0 || s.MaxValue < s.MinValue {
			return fmt.Errorf("skin %q: invalid value range [%d, %d]", s.Name, s.MinValue, s.MaxValue)
		}
		skins[s.Name] = s
	}

	caseNames := make(map[string]struct{}, len(f.Cases))
	for _, c := range f.Cases {
		if _, dup := caseNames[c.Name]; dup {
			return fmt.Errorf("duplicate case %q", c.Name)
		}
		caseNames[c.Name] = struct{}{}

		if c.Price <= 0 {
			return fmt.Errorf("case %q: price must be positive", c.Name)
		}
		if len(c.Slots) == 0 {
			return fmt.Errorf("case %q: no drop table slots", c.Name)
		}

		total := 0.0
		for _, slot := range c.Slots {
			if _, ok := skins[slot.Skin]; !ok {
				return fmt.Errorf("case %q: unknown skin %q", c.Name, slot.Skin)
			}
			if slot.Weight < 0 {
				return fmt.Errorf("case %q: negative weight for %q", c.Name, slot.Skin)
			}
			total += slot.Weight
		}
		if total <= 0 {
			return fmt.Errorf("case %q: drop table weights sum to zero", c.Name)
		}
	}
	return nil
}
