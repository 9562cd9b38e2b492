package tro

import (
	"strconv"

	"github.com/mattn/go-runewidth"

	"github.com/trokit/aerotro/internal/util"
	"github.com/trokit/aerotro/pkg/core"
)

const minNameWidth = 20

type equipmentGroup struct {
	mount *core.Mount
	count int
}

func (g *equipmentGroup) name() string {
	if g.count > 1 {
		return strconv.Itoa(g.count) + " " + g.mount.Type.Name
	}
	return g.mount.Type.Name
}

func (g *equipmentGroup) location() string {
	if g.mount.Rear {
		return g.mount.Location.Abbr() + " (R)"
	}
	return g.mount.Location.Abbr()
}

// groupMounts merges identical mounts at the same location in first-seen order.
func groupMounts(mounts []*core.Mount) []*equipmentGroup {
	var groups []*equipmentGroup
	for _, m := range mounts {
		var found *equipmentGroup
		for _, g := range groups {
			if g.mount.Type == m.Type && g.mount.Location == m.Location && g.mount.Rear == m.Rear {
				found = g
				break
			}
		}
		if found == nil {
			found = &equipmentGroup{mount: m}
			groups = append(groups, found)
		}
		found.count++
	}
	return groups
}

// bayMembers returns the equipment numbers claimed by weapon bays.
func (b *Builder) bayMembers() map[int]bool {
	members := make(map[int]bool)
	for _, bay := range b.unit.WeaponBays {
		for _, n := range bay.Weapons {
			members[n] = true
		}
		for _, n := range bay.Ammo {
			members[n] = true
		}
	}
	return members
}

// listedMounts are the mounts shown in the equipment table: everything except
// ammunition and equipment already shown in a weapon bay.
func (b *Builder) listedMounts() []*core.Mount {
	members := b.bayMembers()
	var out []*core.Mount
	for n, m := range b.unit.Mounts {
		if m == nil || m.Type == nil || members[n] {
			continue
		}
		if m.Type.Kind == core.KindAmmo || m.Type.Kind == core.KindBay {
			continue
		}
		out = append(out, m)
	}
	return out
}

// addEquipment fills the equipment table and returns the width of its name column.
func (b *Builder) addEquipment() int {
	nameWidth := minNameWidth
	rows := NewList()
	for _, g := range groupMounts(b.listedMounts()) {
		t := g.mount.Type
		row := NewMap()
		row.Set("name", String(g.name()))
		row.Set("location", String(g.location()))
		row.Set("tonnage", b.number(t.Tonnage*float64(g.count)))
		if t.IsWeapon() {
			row.Set("heat", Int(t.Heat*g.count))
			row.Set("srv", Int(t.ShortAV*g.count))
			row.Set("mrv", Int(t.MediumAV*g.count))
			row.Set("lrv", Int(t.LongAV*g.count))
			row.Set("erv", Int(t.ExtremeAV*g.count))
		} else {
			for _, key := range []string{"heat", "srv", "mrv", "lrv", "erv"} {
				row.Set(key, String("-"))
			}
		}
		rows.Append(row)
		nameWidth = max(nameWidth, runewidth.StringWidth(g.name())+1)
	}
	b.model.Set("equipment", rows)
	return nameWidth
}

// addFixedOmni lists equipment that is not pod-mounted on an omni unit.
func (b *Builder) addFixedOmni() {
	var fixed []*core.Mount
	for _, m := range b.unit.Mounts {
		if m == nil || m.Type == nil || m.OmniPod || m.Type.Kind == core.KindBay {
			continue
		}
		fixed = append(fixed, m)
	}

	rows := NewList()
	total := 0.0
	for _, g := range groupMounts(fixed) {
		tons := g.mount.Type.Tonnage * float64(g.count)
		total += tons
		row := NewMap()
		row.Set("name", String(g.name()))
		row.Set("location", String(g.location()))
		row.Set("tonnage", b.number(tons))
		rows.Append(row)
	}
	b.model.Set("fixedEquipment", rows)
	b.model.Set("fixedTonnage", b.number(total))
}

// addAmmo groups ammunition by type name, summing usable shots and tonnage.
func (b *Builder) addAmmo() {
	type ammoGroup struct {
		name    string
		shots   int
		tonnage float64
	}
	var groups []*ammoGroup
	index := make(map[string]*ammoGroup)
	for _, m := range b.unit.Ammo() {
		g, ok := index[m.Type.Name]
		if !ok {
			g = &ammoGroup{name: m.Type.Name}
			index[m.Type.Name] = g
			groups = append(groups, g)
		}
		g.shots += m.UsableShotsLeft()
		g.tonnage += m.Type.Tonnage
	}

	ammo := NewList()
	for _, g := range groups {
		row := NewMap()
		row.Set("name", String(util.StripWord(g.name, "Ammo")))
		row.Set("shots", Int(g.shots))
		row.Set("tonnage", b.number(g.tonnage))
		ammo.Append(row)
	}
	b.model.Set("ammo", ammo)
}
