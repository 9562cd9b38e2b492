// pkg/core/equipment.go
package core

// EquipmentKind classifies an equipment type.
type EquipmentKind string

const (
	KindWeapon EquipmentKind = "weapon"
	KindAmmo   EquipmentKind = "ammo"
	KindBay    EquipmentKind = "bay"
	KindMisc   EquipmentKind = "misc"
)

// EquipmentType is a weapon, ammunition, bay or miscellaneous equipment definition.
// AmmoKind links weapons to the ammunition they consume.
type EquipmentType struct {
	Name         string
	InternalName string
	Kind         EquipmentKind
	Tonnage      float64
	Heat         int
	ShortAV      int
	MediumAV     int
	LongAV       int
	ExtremeAV    int
	Capital      bool
	AmmoKind     string
	Shots        int
}

// IsWeapon reports whether the type is a weapon or weapon bay.
func (t *EquipmentType) IsWeapon() bool {
	return t.Kind == KindWeapon || t.Kind == KindBay
}

// Mount is an equipment instance attached to a unit.
type Mount struct {
	Type      *EquipmentType
	Location  Location
	Rear      bool
	ShotsLeft int
	OmniPod   bool
	Destroyed bool
}

// BaseShotsLeft returns the loaded shot count.
func (m *Mount) BaseShotsLeft() int {
	return m.ShotsLeft
}

// UsableShotsLeft returns shots that can still be fired; destroyed bins have none.
func (m *Mount) UsableShotsLeft() int {
	if m.Destroyed {
		return 0
	}
	return m.ShotsLeft
}

// WeaponBay groups weapon mounts and their ammunition on one firing arc.
// Weapons and Ammo hold equipment numbers.
type WeaponBay struct {
	Type     *EquipmentType
	Location Location
	Arc      string // firing arc abbreviation when it differs from the mounting location
	Weapons  []int
	Ammo     []int
}

// Name returns the bay type name.
func (b *WeaponBay) Name() string {
	if b.Type == nil {
		return "Unknown Bay"
	}
	return b.Type.Name
}

// ArcAbbr returns the firing arc abbreviation.
func (b *WeaponBay) ArcAbbr() string {
	if b.Arc != "" {
		return b.Arc
	}
	return b.Location.Abbr()
}
