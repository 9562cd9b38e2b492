package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/trokit/aerotro/internal/equipment"
	"github.com/trokit/aerotro/pkg/core"
	"gopkg.in/yaml.v3"
)

// ErrInvalidUnit wraps every validation failure in a unit file.
var ErrInvalidUnit = errors.New("invalid unit")

// Format is a unit file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the encoding from a file extension.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".json":
		return FormatJSON, true
	}
	return "", false
}

// Parser converts unit files into core.Aero values.
// Equipment types resolve through the registry.
type Parser struct {
	logger   *slog.Logger
	registry *equipment.Registry
}

// NewParser creates a parser backed by registry.
func NewParser(logger *slog.Logger, registry *equipment.Registry) *Parser {
	return &Parser{
		logger:   logger,
		registry: registry,
	}
}

// ParseFile reads and parses a unit file.
func (p *Parser) ParseFile(path string) (*core.Aero, core.StaticWeights, error) {
	format, ok := FormatFromPath(path)
	if !ok {
		return nil, core.StaticWeights{}, fmt.Errorf("unsupported unit file extension: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.StaticWeights{}, fmt.Errorf("failed to read unit file: %w", err)
	}
	unit, weights, err := p.Parse(data, format)
	if err != nil {
		return nil, core.StaticWeights{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return unit, weights, nil
}

// Parse decodes data and builds the unit. Weapon bay references are not
// checked against the equipment list.
func (p *Parser) Parse(data []byte, format Format) (*core.Aero, core.StaticWeights, error) {
	var f UnitFile
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, core.StaticWeights{}, fmt.Errorf("error unmarshalling unit data: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, core.StaticWeights{}, fmt.Errorf("error unmarshalling unit data: %w", err)
		}
	default:
		return nil, core.StaticWeights{}, fmt.Errorf("unsupported unit format %q", format)
	}

	unit, err := p.build(&f)
	if err != nil {
		return nil, core.StaticWeights{}, err
	}

	weights := core.StaticWeights{
		Engine:    f.Weights.Engine,
		HeatSinks: f.Weights.HeatSinks,
		Controls:  f.Weights.Controls,
		Armor:     f.Weights.Armor,
	}

	p.logger.Debug("Parsed unit",
		"unit", unit.FullName(),
		"mounts", len(unit.Mounts),
		"weaponBays", len(unit.WeaponBays),
		"transportBays", len(unit.TransportBays))

	return unit, weights, nil
}

func (p *Parser) build(f *UnitFile) (*core.Aero, error) {
	if strings.TrimSpace(f.Chassis) == "" {
		return nil, fmt.Errorf("%w: chassis is required", ErrInvalidUnit)
	}
	if f.Tonnage <= 0 {
		return nil, fmt.Errorf("%w: tonnage must be positive, got %g", ErrInvalidUnit, f.Tonnage)
	}

	registry := p.registry
	if len(f.EquipmentTypes) > 0 {
		registry = registry.Clone()
		if err := registry.AddDefinitions(f.EquipmentTypes); err != nil {
			return nil, fmt.Errorf("%w: equipment types: %v", ErrInvalidUnit, err)
		}
	}

	unit := &core.Aero{
		Chassis:      f.Chassis,
		Model:        f.Model,
		Year:         f.Year,
		Tonnage:      f.Tonnage,
		TechBase:     f.TechBase,
		RulesLevel:   f.RulesLevel,
		Role:         f.Role,
		Source:       f.Source,
		BattleValue:  f.BattleValue,
		Cost:         f.Cost,
		Omni:         f.Omni,
		Conventional: f.Conventional,
		Engine:       core.Engine{Name: f.Engine.Name, Rating: f.Engine.Rating},
		SafeThrust:   f.Thrust.Safe,
		MaxThrust:    f.Thrust.Max,
		SI:           f.StructuralIntegrity,
		HeatSinks:    f.HeatSinks.Count,
		Fuel:         f.Fuel.Points,
		FuelTonnage:  f.Fuel.Tonnage,
		ArmorType:    f.Armor.Type,
		Crew:         core.Crew(f.Crew),
		Fluff: core.Fluff{
			Overview:            f.Fluff.Overview,
			Capabilities:        f.Fluff.Capabilities,
			Deployment:          f.Fluff.Deployment,
			History:             f.Fluff.History,
			Manufacturer:        f.Fluff.Manufacturer,
			PrimaryFactory:      f.Fluff.PrimaryFactory,
			SystemManufacturers: f.Fluff.SystemManufacturers,
		},
	}

	switch strings.ToLower(strings.TrimSpace(f.HeatSinks.Type)) {
	case "", "single":
		unit.HeatSinkType = core.HeatSingle
	case "double":
		unit.HeatSinkType = core.HeatDouble
	default:
		return nil, fmt.Errorf("%w: unknown heat sink type %q", ErrInvalidUnit, f.HeatSinks.Type)
	}

	cockpit, ok := core.ParseCockpitType(f.Cockpit)
	if !ok {
		return nil, fmt.Errorf("%w: unknown cockpit type %q", ErrInvalidUnit, f.Cockpit)
	}
	unit.Cockpit = cockpit

	if err := parseArmor(unit, &f.Armor); err != nil {
		return nil, err
	}

	for i, ms := range f.Equipment {
		m, err := parseMount(registry, ms)
		if err != nil {
			return nil, fmt.Errorf("%w: equipment %d: %v", ErrInvalidUnit, i, err)
		}
		unit.Mounts = append(unit.Mounts, m)
	}

	for i, bs := range f.WeaponBays {
		bay, err := parseWeaponBay(registry, bs)
		if err != nil {
			return nil, fmt.Errorf("%w: weapon bay %d: %v", ErrInvalidUnit, i, err)
		}
		unit.WeaponBays = append(unit.WeaponBays, bay)
	}

	for i, ts := range f.TransportBays {
		if strings.TrimSpace(ts.Kind) == "" {
			return nil, fmt.Errorf("%w: transport bay %d has no kind", ErrInvalidUnit, i)
		}
		unit.TransportBays = append(unit.TransportBays, &core.TransportBay{
			Kind:     ts.Kind,
			Capacity: ts.Capacity,
			Doors:    ts.Doors,
		})
	}

	return unit, nil
}

func parseArmor(unit *core.Aero, spec *ArmorSpec) error {
	unit.Armor = make(map[core.Location]int, len(core.ArmorLocations))
	for key, value := range spec.Values {
		loc, err := armorLocation(key)
		if err != nil {
			return err
		}
		if value < 0 {
			return fmt.Errorf("%w: negative armor at %s", ErrInvalidUnit, loc.Abbr())
		}
		unit.Armor[loc] = value
	}

	if len(spec.Types) > 0 {
		unit.ArmorTypes = make(map[core.Location]string, len(spec.Types))
		for key, name := range spec.Types {
			loc, err := armorLocation(key)
			if err != nil {
				return err
			}
			unit.ArmorTypes[loc] = name
		}
	}
	unit.Patchwork = spec.Patchwork || len(unit.ArmorTypes) > 0
	return nil
}

func armorLocation(key string) (core.Location, error) {
	loc, ok := core.ParseLocation(key)
	if !ok {
		return 0, fmt.Errorf("%w: unknown armor location %q", ErrInvalidUnit, key)
	}
	for _, l := range core.ArmorLocations {
		if l == loc {
			return loc, nil
		}
	}
	return 0, fmt.Errorf("%w: %s does not carry armor", ErrInvalidUnit, loc.Name())
}

func parseMount(registry *equipment.Registry, ms MountSpec) (*core.Mount, error) {
	t, ok := registry.Lookup(ms.Type)
	if !ok {
		return nil, fmt.Errorf("unknown equipment type %q", ms.Type)
	}
	loc, ok := core.ParseLocation(ms.Location)
	if !ok {
		return nil, fmt.Errorf("unknown location %q", ms.Location)
	}

	m := &core.Mount{
		Type:      t,
		Location:  loc,
		Rear:      ms.Rear,
		OmniPod:   ms.OmniPod,
		Destroyed: ms.Destroyed,
	}
	if ms.Shots != nil {
		if *ms.Shots < 0 {
			return nil, fmt.Errorf("negative shots for %s", t.Name)
		}
		m.ShotsLeft = *ms.Shots
	} else if t.Kind == core.KindAmmo {
		m.ShotsLeft = t.Shots
	}
	return m, nil
}

func parseWeaponBay(registry *equipment.Registry, bs WeaponBaySpec) (*core.WeaponBay, error) {
	t, ok := registry.Lookup(bs.Type)
	if !ok {
		return nil, fmt.Errorf("unknown bay type %q", bs.Type)
	}
	if t.Kind != core.KindBay {
		return nil, fmt.Errorf("%s is not a weapon bay", t.Name)
	}
	loc, ok := core.ParseLocation(bs.Location)
	if !ok {
		return nil, fmt.Errorf("unknown location %q", bs.Location)
	}
	return &core.WeaponBay{
		Type:     t,
		Location: loc,
		Arc:      strings.ToUpper(strings.TrimSpace(bs.Arc)),
		Weapons:  bs.Weapons,
		Ammo:     bs.Ammo,
	}, nil
}
