package equipment

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/trokit/aerotro/pkg/core"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var builtinCatalog []byte

// ErrUnknownKind is returned when a definition names an unsupported equipment kind.
var ErrUnknownKind = errors.New("unknown equipment kind")

// Definition is the YAML form of an equipment type, shared by catalogs and unit files.
type Definition struct {
	Name         string  `yaml:"name" json:"name"`
	InternalName string  `yaml:"internalName" json:"internalName"`
	Kind         string  `yaml:"kind" json:"kind"`
	Tonnage      float64 `yaml:"tonnage" json:"tonnage"`
	Heat         int     `yaml:"heat" json:"heat"`
	AV           []int   `yaml:"av" json:"av"` // short, medium, long, extreme
	Capital      bool    `yaml:"capital" json:"capital"`
	AmmoKind     string  `yaml:"ammoKind" json:"ammoKind"`
	Shots        int     `yaml:"shots" json:"shots"`
}

// ToCore validates the definition and converts it to an EquipmentType.
func (d Definition) ToCore() (*core.EquipmentType, error) {
	if strings.TrimSpace(d.Name) == "" {
		return nil, fmt.Errorf("equipment definition has no name")
	}
	kind := core.EquipmentKind(strings.ToLower(d.Kind))
	switch kind {
	case core.KindWeapon, core.KindAmmo, core.KindBay, core.KindMisc:
	case "":
		kind = core.KindMisc
	default:
		return nil, fmt.Errorf("%s: %w %q", d.Name, ErrUnknownKind, d.Kind)
	}
	if len(d.AV) > 4 {
		return nil, fmt.Errorf("%s: expected at most 4 attack values, got %d", d.Name, len(d.AV))
	}
	av := make([]int, 4)
	copy(av, d.AV)

	return &core.EquipmentType{
		Name:         d.Name,
		InternalName: d.InternalName,
		Kind:         kind,
		Tonnage:      d.Tonnage,
		Heat:         d.Heat,
		ShortAV:      av[0],
		MediumAV:     av[1],
		LongAV:       av[2],
		ExtremeAV:    av[3],
		Capital:      d.Capital,
		AmmoKind:     d.AmmoKind,
		Shots:        d.Shots,
	}, nil
}

// Registry holds equipment types keyed by name and internal name.
// Lookups are case-insensitive.
type Registry struct {
	mu    sync.RWMutex
	types map[string]*core.EquipmentType
	order []*core.EquipmentType
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		types: make(map[string]*core.EquipmentType),
	}
}

// Default returns a registry preloaded with the built-in catalog.
func Default() (*Registry, error) {
	r := NewRegistry()
	if err := r.LoadYAML(builtinCatalog); err != nil {
		return nil, fmt.Errorf("failed to load built-in catalog: %w", err)
	}
	return r, nil
}

// Add registers t, replacing any type with the same display name. A display
// name takes precedence over another type's internal name alias.
func (r *Registry) Add(t *core.EquipmentType) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(t.Name)
	if old, ok := r.types[key]; ok && strings.EqualFold(old.Name, t.Name) {
		r.order = slices.DeleteFunc(r.order, func(e *core.EquipmentType) bool { return e == old })
		if alias := strings.ToLower(old.InternalName); alias != "" && r.types[alias] == old {
			delete(r.types, alias)
		}
	}
	r.types[key] = t
	if alias := strings.ToLower(t.InternalName); alias != "" {
		if other, ok := r.types[alias]; !ok || !strings.EqualFold(other.Name, alias) {
			r.types[alias] = t
		}
	}
	r.order = append(r.order, t)
}

// Lookup finds a type by display name or internal name.
func (r *Registry) Lookup(name string) (*core.EquipmentType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// Types returns all registered types in registration order.
func (r *Registry) Types() []*core.EquipmentType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// Names returns the display names of all registered types, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.order))
	for _, t := range r.order {
		names = append(names, t.Name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// LoadYAML registers every definition in a YAML list.
func (r *Registry) LoadYAML(data []byte) error {
	var defs []Definition
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return fmt.Errorf("error unmarshalling equipment catalog: %w", err)
	}
	return r.AddDefinitions(defs)
}

// LoadFile registers definitions from a YAML catalog file.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read equipment catalog: %w", err)
	}
	if err := r.LoadYAML(data); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// AddDefinitions converts and registers defs. Nothing is registered if any
// definition is invalid.
func (r *Registry) AddDefinitions(defs []Definition) error {
	types := make([]*core.EquipmentType, 0, len(defs))
	for i, d := range defs {
		t, err := d.ToCore()
		if err != nil {
			return fmt.Errorf("definition %d: %w", i, err)
		}
		types = append(types, t)
	}
	for _, t := range types {
		r.Add(t)
	}
	return nil
}

// Clone returns an independent copy of the registry, so unit-local
// definitions do not leak into the shared catalog.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c := NewRegistry()
	for _, t := range r.order {
		c.types[strings.ToLower(t.Name)] = t
		if t.InternalName != "" {
			c.types[strings.ToLower(t.InternalName)] = t
		}
	}
	c.order = slices.Clone(r.order)
	return c
}
