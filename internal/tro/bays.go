package tro

import (
	"fmt"
	"math"

	"github.com/trokit/aerotro/internal/util"
	"github.com/trokit/aerotro/pkg/core"
)

// Arc is a firing arc: the abbreviation bays are grouped by and its display name.
type Arc struct {
	Abbr string
	Name string
}

// ArcSet is a row group in the weapon bay table. Mirrored side arcs share a
// set; bays are looked up by the first arc only, since the others carry copies.
type ArcSet []Arc

// DefaultArcSets lists arcs in readout order.
var DefaultArcSets = []ArcSet{
	{{Abbr: "NOS", Name: "Nose"}},
	{{Abbr: "FLS", Name: "Left Fwd"}, {Abbr: "FRS", Name: "Right Fwd"}},
	{{Abbr: "LWG", Name: "Left Wing"}, {Abbr: "RWG", Name: "Right Wing"}},
	{{Abbr: "ALS", Name: "Left Aft"}, {Abbr: "ARS", Name: "Right Aft"}},
	{{Abbr: "AFT", Name: "Aft"}},
}

// DisplayName joins the arc names, "Left/Right Fwd" for mirrored side arcs.
func (s ArcSet) DisplayName() string {
	names := make([]string, len(s))
	for i, a := range s {
		names[i] = a.Name
	}
	return util.JoinArcNames(names)
}

// capitalMultiplier scales capital weapon attack values to standard scale.
const capitalMultiplier = 10

func (b *Builder) addWeaponBays() {
	byArc := make(map[string][]*core.WeaponBay)
	for _, bay := range b.unit.WeaponBays {
		byArc[bay.ArcAbbr()] = append(byArc[bay.ArcAbbr()], bay)
	}

	arcs := NewList()
	heatByArc := NewMap()
	details := NewMap()
	for _, set := range b.arcSets {
		if len(set) == 0 {
			continue
		}
		bays := byArc[set[0].Abbr]
		if len(bays) == 0 {
			continue
		}
		rows := NewList()
		heat := 0
		for _, bay := range bays {
			row, bayHeat := b.bayRow(bay)
			heat += bayHeat
			rows.Append(row)
		}
		name := set.DisplayName()
		arcs.Append(String(name))
		heatByArc.Set(name, Int(heat))
		details.Set(name, rows)
	}
	b.model.Set("weaponBayArcs", arcs)
	b.model.Set("weaponBayHeat", heatByArc)
	b.model.Set("weaponBays", details)
}

type weaponTally struct {
	weapon *core.EquipmentType
	count  int
}

// bayRow aggregates one weapon bay. Weapons are listed only when the bay
// carries their ammo with shots left; every resolved weapon still counts toward
// heat and attack values.
func (b *Builder) bayRow(bay *core.WeaponBay) (*Map, int) {
	shotsByAmmo := make(map[string]int)
	for _, n := range bay.Ammo {
		m, ok := b.unit.Equipment(n)
		if !ok {
			b.diagnose(core.DiagMissingEquipment, bay.Name(),
				fmt.Sprintf("Bay %s has non-existent ammo %d", bay.Name(), n))
			continue
		}
		if m.Type == nil || m.Type.Kind != core.KindAmmo {
			b.diagnose(core.DiagInvalidReference, bay.Name(),
				fmt.Sprintf("Bay %s references equipment %d as ammo", bay.Name(), n))
			continue
		}
		shotsByAmmo[m.Type.AmmoKind] += m.BaseShotsLeft()
	}

	var tallies []*weaponTally
	heat, srv, mrv, lrv, erv := 0, 0, 0, 0, 0
	for _, n := range bay.Weapons {
		m, ok := b.unit.Equipment(n)
		if !ok {
			b.diagnose(core.DiagMissingEquipment, bay.Name(),
				fmt.Sprintf("Bay %s has non-existent weapon %d", bay.Name(), n))
			continue
		}
		w := m.Type
		if w == nil || w.Kind != core.KindWeapon {
			b.diagnose(core.DiagInvalidReference, bay.Name(),
				fmt.Sprintf("Bay %s references equipment %d as a weapon", bay.Name(), n))
			continue
		}

		idx := -1
		for i, t := range tallies {
			if t.weapon == w {
				idx = i
				break
			}
		}
		if idx < 0 {
			tallies = append(tallies, &weaponTally{weapon: w})
			idx = len(tallies) - 1
		}
		tallies[idx].count++

		mult := 1
		if w.Capital {
			mult = capitalMultiplier
		}
		heat += w.Heat
		srv += w.ShortAV * mult
		mrv += w.MediumAV * mult
		lrv += w.LongAV * mult
		erv += w.ExtremeAV * mult
	}

	weapons := NewList()
	for _, t := range tallies {
		if t.weapon.AmmoKind == "" {
			continue
		}
		if shots, ok := shotsByAmmo[t.weapon.AmmoKind]; ok && shots > 0 {
			weapons.Append(String(fmt.Sprintf("%d %s (%d shots)", t.count, t.weapon.Name, shots)))
		}
	}

	row := NewMap()
	row.Set("weapons", weapons)
	row.Set("heat", Int(heat))
	row.Set("srv", String(FormatAV(srv)))
	row.Set("mrv", String(FormatAV(mrv)))
	row.Set("lrv", String(FormatAV(lrv)))
	row.Set("erv", String(FormatAV(erv)))
	row.Set("class", String(util.StripWord(bay.Name(), "Bay")))
	return row, heat
}

// FormatAV shows an attack value at capital scale, rounded half up, followed
// by the standard-scale value: 35 becomes "4(35)".
func FormatAV(v int) string {
	return fmt.Sprintf("%d(%d)", int(math.Floor(float64(v)/10+0.5)), v)
}

func (b *Builder) addTransportBays() {
	bays := NewList()
	for _, bay := range b.unit.TransportBays {
		if bay.IsQuarters() {
			continue
		}
		data, ok := core.LookupBayType(bay)
		if !ok {
			b.diagnose(core.DiagUnresolvedBay, bay.Kind,
				"Could not determine bay type for "+bay.String())
			continue
		}
		row := NewMap()
		row.Set("name", String(data.DisplayName))
		if data.Cargo {
			row.Set("size", String(b.msgs.Number(bay.Capacity)+b.msgs.String("TROView.tons")))
		} else {
			row.Set("size", Int(int(bay.Capacity)))
		}
		row.Set("doors", Int(bay.Doors))
		bays.Append(row)
	}
	b.model.Set("bays", bays)
}
