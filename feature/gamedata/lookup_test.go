package gamedata

import (
	"context"
	"encoding/json"
	"testing"

	"holotable/core/client/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuildLookups(t *testing.T) {
	units := []unitDef{
		{BaseID: "VADER", NameKey: "UNIT_VADER_NAME", CombatType: 1},
		{BaseID: "", NameKey: "ignored"},
	}
	skills := []skillDef{
		{ID: "basicskill_VADER", AbilityReference: "basicability_VADER", IsZeta: false},
		{ID: "specialskill_VADER", AbilityReference: "missing_ability", IsZeta: true},
	}
	abilities := []abilityDef{
		{ID: "basicability_VADER", NameKey: "BASICABILITY_VADER_NAME"},
	}
	equipment := []equipmentDef{
		{ID: "001", NameKey: "EQUIPMENT_001_NAME", Mark: "Mk I"},
	}
	mods := []modDef{
		{ID: "755", SetID: "4", Rarity: 5, Slot: 2},
	}

	tables := buildLookups(units, skills, abilities, equipment, mods)

	assert.Len(t, tables.Units, 1)
	assert.Equal(t, UnitMeta{NameKey: "UNIT_VADER_NAME", CombatType: 1}, tables.Units["VADER"])

	assert.Equal(t, "BASICABILITY_VADER_NAME", tables.Skills["basicskill_VADER"].NameKey)
	// A dangling ability reference keeps the entry with an empty name.
	assert.Equal(t, "", tables.Skills["specialskill_VADER"].NameKey)
	assert.True(t, tables.Skills["specialskill_VADER"].IsZeta)

	assert.Equal(t, EquipmentMeta{NameKey: "EQUIPMENT_001_NAME", Mark: "Mk I"}, tables.Equipment["001"])
	assert.Equal(t, ModMeta{SetID: "4", Rarity: 5, Slot: 2}, tables.Mods["755"])
}

func TestRebuildLookups_MissingSourceLeavesTablesUntouched(t *testing.T) {
	mockClient := new(mocks.Client)
	st := newTestStore(t)
	cfg := testDataConfig()
	cfg.DisableLocalization = true
	svc := NewService(mockClient, st, cfg, zap.NewNop())
	ctx := context.Background()

	// Seed a full snapshot.
	mockClient.On("GetGameData", mock.Anything, "GD1", true, 0).Return(fullCollections(), nil).Once()
	_, err := svc.UpdateCheck(ctx, "GD1", "L1", false)
	require.NoError(t, err)

	var before map[string]UnitMeta
	require.NoError(t, st.Read(ctx, unitLookupDoc, &before))
	require.Len(t, before, 1)

	// Next update drops every collection except units, so the rebuild fails
	// on its first missing source before writing any table.
	mockClient.On("GetGameData", mock.Anything, "GD2", true, 0).Return(map[string]json.RawMessage{
		"units": json.RawMessage(`[{"baseId":"LUKE","nameKey":"UNIT_LUKE_NAME"}]`),
	}, nil).Once()

	_, err = svc.UpdateCheck(ctx, "GD2", "L1", false)
	require.Error(t, err)

	// "units" itself was rewritten at GD2, but no lookup table moved.
	var after map[string]UnitMeta
	require.NoError(t, st.Read(ctx, unitLookupDoc, &after))
	assert.Equal(t, before, after)
}

func TestLookup_ServesPersistedTables(t *testing.T) {
	mockClient := new(mocks.Client)
	st := newTestStore(t)
	cfg := testDataConfig()
	cfg.DisableLocalization = true
	svc := NewService(mockClient, st, cfg, zap.NewNop())
	ctx := context.Background()

	mockClient.On("GetGameData", mock.Anything, "GD1", true, 0).Return(fullCollections(), nil)
	_, err := svc.UpdateCheck(ctx, "GD1", "", false)
	require.NoError(t, err)

	raw, err := svc.Lookup(ctx, unitLookupDoc)
	require.NoError(t, err)

	var units map[string]UnitMeta
	require.NoError(t, json.Unmarshal(raw, &units))
	assert.Contains(t, units, "VADER")

	_, err = svc.Lookup(ctx, "noSuchLookup")
	assert.Error(t, err)
}
