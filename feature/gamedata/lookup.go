package gamedata

import (
	"context"
	"encoding/json"
	"fmt"

	"holotable/core/store"

	"go.uber.org/zap"
)

// Collection names the lookup rebuild consumes.
const (
	colUnits     = "units"
	colSkill     = "skill"
	colAbility   = "ability"
	colEquipment = "equipment"
	colStatMod   = "statMod"
)

// Persisted lookup table names. Unlike collections these are bare mappings
// without a version wrapper: they are always rebuilt fresh, never
// read-validated.
const (
	unitLookupDoc      = "unitLookup"
	skillLookupDoc     = "skillLookup"
	equipmentLookupDoc = "equipmentLookup"
	modLookupDoc       = "modLookup"
)

var lookupTableNames = []string{unitLookupDoc, skillLookupDoc, equipmentLookupDoc, modLookupDoc}

// Raw definition shapes, limited to the fields the lookups project.
type unitDef struct {
	BaseID     string `json:"baseId"`
	NameKey    string `json:"nameKey"`
	CombatType int    `json:"combatType"`
}

type skillDef struct {
	ID               string `json:"id"`
	AbilityReference string `json:"abilityReference"`
	IsZeta           bool   `json:"isZeta"`
}

type abilityDef struct {
	ID      string `json:"id"`
	NameKey string `json:"nameKey"`
}

type equipmentDef struct {
	ID      string `json:"id"`
	NameKey string `json:"nameKey"`
	Mark    string `json:"mark"`
}

type modDef struct {
	ID     string `json:"id"`
	SetID  string `json:"setId"`
	Rarity int    `json:"rarity"`
	Slot   int    `json:"slot"`
}

// Display metadata projected into the lookup tables.
type UnitMeta struct {
	NameKey    string `json:"nameKey"`
	CombatType int    `json:"combatType"`
}

type SkillMeta struct {
	NameKey          string `json:"nameKey"`
	AbilityReference string `json:"abilityReference"`
	IsZeta           bool   `json:"isZeta"`
}

type EquipmentMeta struct {
	NameKey string `json:"nameKey"`
	Mark    string `json:"mark"`
}

type ModMeta struct {
	SetID  string `json:"setId"`
	Rarity int    `json:"rarity"`
	Slot   int    `json:"slot"`
}

// LookupTables is one derived snapshot. The four maps are rebuilt together
// and persisted together; a failure anywhere leaves the previous snapshot
// untouched.
type LookupTables struct {
	Units     map[string]UnitMeta
	Skills    map[string]SkillMeta
	Equipment map[string]EquipmentMeta
	Mods      map[string]ModMeta
}

// rebuildLookups re-reads the source collections from the store, derives
// the four lookup tables and persists them. Callers must hold s.mu.
func (s *Service) rebuildLookups(ctx context.Context) error {
	var (
		units     []unitDef
		skills    []skillDef
		abilities []abilityDef
		equipment []equipmentDef
		mods      []modDef
	)
	if err := s.readCollection(ctx, colUnits, &units); err != nil {
		return err
	}
	if err := s.readCollection(ctx, colSkill, &skills); err != nil {
		return err
	}
	if err := s.readCollection(ctx, colAbility, &abilities); err != nil {
		return err
	}
	if err := s.readCollection(ctx, colEquipment, &equipment); err != nil {
		return err
	}
	if err := s.readCollection(ctx, colStatMod, &mods); err != nil {
		return err
	}

	tables := buildLookups(units, skills, abilities, equipment, mods)

	persisted := make(map[string]json.RawMessage, len(lookupTableNames))
	for name, table := range map[string]any{
		unitLookupDoc:      tables.Units,
		skillLookupDoc:     tables.Skills,
		equipmentLookupDoc: tables.Equipment,
		modLookupDoc:       tables.Mods,
	} {
		raw := mustMarshal(table)
		if err := s.store.Write(ctx, name, raw); err != nil {
			return fmt.Errorf("failed to persist %s: %w", name, err)
		}
		persisted[name] = raw
	}

	s.lookups = persisted
	s.logger.Info("Lookup tables rebuilt",
		zap.Int("units", len(tables.Units)),
		zap.Int("skills", len(tables.Skills)),
		zap.Int("equipment", len(tables.Equipment)),
		zap.Int("mods", len(tables.Mods)))
	return nil
}

// readCollection unwraps the named versioned document into out.
func (s *Service) readCollection(ctx context.Context, name string, out any) error {
	var doc store.Document
	if err := s.store.Read(ctx, name, &doc); err != nil {
		return fmt.Errorf("lookup source %s: %w", name, err)
	}
	if err := json.Unmarshal(doc.Data, out); err != nil {
		return fmt.Errorf("lookup source %s: %w", name, err)
	}
	return nil
}

// buildLookups derives the four display-metadata maps from the raw
// definition collections. Skill names resolve through the referenced
// ability; skills pointing at an unknown ability keep an empty name rather
// than dropping the entry.
func buildLookups(units []unitDef, skills []skillDef, abilities []abilityDef, equipment []equipmentDef, mods []modDef) *LookupTables {
	tables := &LookupTables{
		Units:     make(map[string]UnitMeta, len(units)),
		Skills:    make(map[string]SkillMeta, len(skills)),
		Equipment: make(map[string]EquipmentMeta, len(equipment)),
		Mods:      make(map[string]ModMeta, len(mods)),
	}

	abilityNames := make(map[string]string, len(abilities))
	for _, a := range abilities {
		abilityNames[a.ID] = a.NameKey
	}

	for _, u := range units {
		if u.BaseID == "" {
			continue
		}
		tables.Units[u.BaseID] = UnitMeta{NameKey: u.NameKey, CombatType: u.CombatType}
	}

	for _, sk := range skills {
		if sk.ID == "" {
			continue
		}
		tables.Skills[sk.ID] = SkillMeta{
			NameKey:          abilityNames[sk.AbilityReference],
			AbilityReference: sk.AbilityReference,
			IsZeta:           sk.IsZeta,
		}
	}

	for _, e := range equipment {
		if e.ID == "" {
			continue
		}
		tables.Equipment[e.ID] = EquipmentMeta{NameKey: e.NameKey, Mark: e.Mark}
	}

	for _, m := range mods {
		if m.ID == "" {
			continue
		}
		tables.Mods[m.ID] = ModMeta{SetID: m.SetID, Rarity: m.Rarity, Slot: m.Slot}
	}

	return tables
}

// Lookup returns the named lookup table from memory, falling back to the
// persisted copy.
func (s *Service) Lookup(ctx context.Context, name string) (json.RawMessage, error) {
	s.mu.Lock()
	raw, ok := s.lookups[name]
	s.mu.Unlock()
	if ok {
		return raw, nil
	}

	var persisted json.RawMessage
	if err := s.store.Read(ctx, name, &persisted); err != nil {
		return nil, err
	}
	return persisted, nil
}
