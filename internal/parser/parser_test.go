package parser

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trokit/aerotro/internal/equipment"
	"github.com/trokit/aerotro/pkg/core"
)

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	registry, err := equipment.Default()
	require.NoError(t, err)
	return NewParser(slog.Default(), registry)
}

func TestNewParser(t *testing.T) {
	p := newTestParser(t)
	require.NotNil(t, p)
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
		ok   bool
	}{
		{"unit.yaml", FormatYAML, true},
		{"unit.YML", FormatYAML, true},
		{"dir/unit.json", FormatJSON, true},
		{"unit.mtf", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := FormatFromPath(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFile_YAMLFighter(t *testing.T) {
	p := newTestParser(t)
	unit, weights, err := p.ParseFile(filepath.Join("testdata", "corsair.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "Corsair CSR-V12", unit.FullName())
	assert.Equal(t, 50.0, unit.Tonnage)
	assert.Equal(t, 6, unit.SafeThrust)
	assert.Equal(t, 9, unit.MaxThrust)
	assert.Equal(t, core.HeatSingle, unit.HeatSinkType)
	assert.Equal(t, core.CockpitStandard, unit.Cockpit)
	assert.Equal(t, 93, unit.TotalArmor())
	assert.False(t, unit.HasPatchworkArmor())
	assert.Len(t, unit.Mounts, 5)
	assert.Equal(t, 1, unit.Crew.Pilots)
	assert.Equal(t, "GM 200", unit.Fluff.SystemManufacturers["ENGINE"])

	ammo := unit.Ammo()
	require.Len(t, ammo, 1)
	assert.Equal(t, 20, ammo[0].ShotsLeft, "ammo without explicit shots gets a full bin")
	assert.Equal(t, core.LocFuselage, ammo[0].Location)

	assert.Equal(t, core.StaticWeights{Engine: 8.5, HeatSinks: 5, Controls: 3, Armor: 7}, weights)
}

func TestParseFile_JSONWithBaysAndLocalTypes(t *testing.T) {
	p := newTestParser(t)
	unit, _, err := p.ParseFile(filepath.Join("testdata", "leopard.json"))
	require.NoError(t, err)

	assert.Equal(t, core.HeatDouble, unit.HeatSinkType)
	assert.Equal(t, core.CockpitCommandConsole, unit.Cockpit)
	assert.True(t, unit.HasPatchworkArmor())
	assert.Equal(t, "Standard", unit.ArmorTypeAt(core.LocAft))
	assert.Equal(t, "Ferro-Aluminum", unit.ArmorTypeAt(core.LocRightWing))
	assert.Equal(t, 76, unit.ArmorAt(core.LocLeftWing))

	require.Len(t, unit.WeaponBays, 1)
	bay := unit.WeaponBays[0]
	assert.Equal(t, "LRM Bay", bay.Name())
	assert.Equal(t, []int{0, 7}, bay.Weapons, "stale references are kept for the builder")
	assert.Equal(t, "NOS", bay.ArcAbbr())

	flamer, ok := unit.Equipment(2)
	require.True(t, ok)
	assert.Equal(t, "Heavy Flamer", flamer.Type.Name)
	assert.Equal(t, 12, unit.Mounts[1].ShotsLeft)

	require.Len(t, unit.TransportBays, 2)
	assert.Equal(t, 55.0, unit.TransportBays[1].Capacity)
}

func TestParse_LocalTypesDoNotLeakIntoRegistry(t *testing.T) {
	registry, err := equipment.Default()
	require.NoError(t, err)
	p := NewParser(slog.Default(), registry)

	_, _, err = p.ParseFile(filepath.Join("testdata", "leopard.json"))
	require.NoError(t, err)

	_, ok := registry.Lookup("Heavy Flamer")
	assert.False(t, ok)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantMsg string
	}{
		{"missing chassis", "tonnage: 10", "chassis is required"},
		{"bad tonnage", "chassis: X\ntonnage: 0", "tonnage must be positive"},
		{"unknown heat sinks", "chassis: X\ntonnage: 5\nheatSinks: {type: triple}", "unknown heat sink type"},
		{"unknown cockpit", "chassis: X\ntonnage: 5\ncockpit: bathtub", "unknown cockpit type"},
		{"unknown armor loc", "chassis: X\ntonnage: 5\narmor: {values: {TURRET: 3}}", "unknown armor location"},
		{"unarmored loc", "chassis: X\ntonnage: 5\narmor: {values: {FSLG: 3}}", "does not carry armor"},
		{"unknown equipment", "chassis: X\ntonnage: 5\nequipment: [{type: Gauss Cannon, location: NOS}]", "unknown equipment type"},
		{"unknown location", "chassis: X\ntonnage: 5\nequipment: [{type: PPC, location: Turret}]", "unknown location"},
		{"bay is not a bay", "chassis: X\ntonnage: 5\nweaponBays: [{type: PPC, location: NOS}]", "is not a weapon bay"},
		{"transport bay kind", "chassis: X\ntonnage: 5\ntransportBays: [{capacity: 3}]", "has no kind"},
	}

	p := newTestParser(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := p.Parse([]byte(tt.data), FormatYAML)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidUnit))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	p := newTestParser(t)

	_, _, err := p.Parse([]byte("{not json"), FormatJSON)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error unmarshalling unit data")

	_, _, err = p.Parse([]byte("chassis: X"), Format("toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported unit format")
}

func TestParseFile_Errors(t *testing.T) {
	p := newTestParser(t)

	_, _, err := p.ParseFile("unit.mtf")
	assert.ErrorContains(t, err, "unsupported unit file extension")

	_, _, err = p.ParseFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read unit file")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tonnage: 5\n"), 0644))
	_, _, err = p.ParseFile(path)
	assert.ErrorContains(t, err, "bad.yaml")
}
