// pkg/core/aero.go
package core

import "strings"

// Location is an aerospace unit body location.
type Location int

const (
	LocNose Location = iota
	LocRightWing
	LocLeftWing
	LocAft
	LocWings
	LocFuselage
)

var locationAbbrs = []string{"NOS", "RWG", "LWG", "AFT", "WNG", "FSLG"}

var locationNames = []string{"Nose", "Right Wing", "Left Wing", "Aft", "Wings", "Fuselage"}

// ArmorLocations are the locations that carry armor.
var ArmorLocations = []Location{LocNose, LocRightWing, LocLeftWing, LocAft}

// Abbr returns the location abbreviation, e.g. "NOS".
func (l Location) Abbr() string {
	if l < 0 || int(l) >= len(locationAbbrs) {
		return "??"
	}
	return locationAbbrs[l]
}

// Name returns the display name of the location.
func (l Location) Name() string {
	if l < 0 || int(l) >= len(locationNames) {
		return "Unknown"
	}
	return locationNames[l]
}

// ParseLocation resolves an abbreviation or display name to a Location.
func ParseLocation(s string) (Location, bool) {
	s = strings.TrimSpace(s)
	for i := range locationAbbrs {
		if strings.EqualFold(s, locationAbbrs[i]) || strings.EqualFold(s, locationNames[i]) {
			return Location(i), true
		}
	}
	return 0, false
}

// HeatSinkType is single or double heat sinks.
type HeatSinkType int

const (
	HeatSingle HeatSinkType = iota
	HeatDouble
)

// CockpitType enumerates aerospace cockpit variants.
type CockpitType int

const (
	CockpitStandard CockpitType = iota
	CockpitSmall
	CockpitCommandConsole
	CockpitPrimitive
)

var cockpitNames = []string{"Standard Cockpit", "Small Cockpit", "Command Console", "Primitive Cockpit"}

// String returns the cockpit type name.
func (c CockpitType) String() string {
	if c < 0 || int(c) >= len(cockpitNames) {
		return "Unknown Cockpit"
	}
	return cockpitNames[c]
}

// ParseCockpitType accepts "standard", "small", "command console", "primitive"
// or the full cockpit name.
func ParseCockpitType(s string) (CockpitType, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CockpitStandard, true
	}
	for i, name := range cockpitNames {
		lower := strings.ToLower(name)
		if s == lower || s+" cockpit" == lower {
			return CockpitType(i), true
		}
	}
	return 0, false
}

// Engine describes the installed engine.
type Engine struct {
	Name   string
	Rating int
}

// Crew counts personnel by category.
type Crew struct {
	Officers           int
	Enlisted           int
	Gunners            int
	Pilots             int
	BayPersonnel       int
	Passengers         int
	Marines            int
	BattleArmorMarines int
	Patients           int
}

// Total returns the number of persons aboard.
func (c Crew) Total() int {
	return c.Officers + c.Enlisted + c.Gunners + c.Pilots + c.BayPersonnel +
		c.Passengers + c.Marines + c.BattleArmorMarines + c.Patients
}

// Fluff carries descriptive text shown in the readout.
type Fluff struct {
	Overview            string
	Capabilities        string
	Deployment          string
	History             string
	Manufacturer        string
	PrimaryFactory      string
	SystemManufacturers map[string]string // keyed by system: CHASSIS, ENGINE, ARMOR, COMMUNICATIONS, TARGETING
}

// Aero is an aerospace fighter or conventional fighter.
// Mounts is indexed by equipment number; bays reference mounts by that index.
type Aero struct {
	Chassis     string
	Model       string
	Year        int
	Tonnage     float64
	TechBase    string
	RulesLevel  string
	Role        string
	Source      string
	BattleValue int
	Cost        float64

	Omni         bool
	Conventional bool

	Engine       Engine
	SafeThrust   int
	MaxThrust    int
	SI           int
	HeatSinkType HeatSinkType
	HeatSinks    int
	Fuel         int
	FuelTonnage  float64
	Cockpit      CockpitType

	ArmorType  string
	ArmorTypes map[Location]string // per-location armor types, patchwork only
	Patchwork  bool
	Armor      map[Location]int

	Mounts        []*Mount
	WeaponBays    []*WeaponBay
	TransportBays []*TransportBay
	Crew          Crew
	Fluff         Fluff
}

// FullName is chassis and model joined by a space.
func (a *Aero) FullName() string {
	return strings.TrimSpace(a.Chassis + " " + a.Model)
}

// Equipment resolves an equipment number to its mount.
func (a *Aero) Equipment(n int) (*Mount, bool) {
	if n < 0 || n >= len(a.Mounts) || a.Mounts[n] == nil {
		return nil, false
	}
	return a.Mounts[n], true
}

// ArmorAt returns the original armor value at loc.
func (a *Aero) ArmorAt(loc Location) int {
	return a.Armor[loc]
}

// TotalArmor sums armor over all armored locations.
func (a *Aero) TotalArmor() int {
	total := 0
	for _, loc := range ArmorLocations {
		total += a.Armor[loc]
	}
	return total
}

// HasPatchworkArmor reports whether armor type varies by location.
func (a *Aero) HasPatchworkArmor() bool {
	return a.Patchwork
}

// ArmorTypeAt returns the armor type at loc, falling back to the unit's armor type.
func (a *Aero) ArmorTypeAt(loc Location) string {
	if t, ok := a.ArmorTypes[loc]; ok && t != "" {
		return t
	}
	return a.ArmorType
}

// Ammo returns all ammunition mounts in equipment order.
func (a *Aero) Ammo() []*Mount {
	var out []*Mount
	for _, m := range a.Mounts {
		if m != nil && m.Type != nil && m.Type.Kind == KindAmmo {
			out = append(out, m)
		}
	}
	return out
}
