// Package tro shapes an aerospace unit into the ordered model that the
// readout templates consume.
package tro

import (
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/trokit/aerotro/internal/messages"
	"github.com/trokit/aerotro/internal/util"
	"github.com/trokit/aerotro/pkg/core"
)

// Template function names for the row formats in a Report.
const (
	FormatArmorRow     = "formatArmorRow"
	FormatEquipmentRow = "formatEquipmentRow"
)

// Options configures a Builder. Zero values fall back to slog.Default,
// the English catalog and DefaultArcSets.
type Options struct {
	Logger   *slog.Logger
	Messages *messages.Catalog
	ArcSets  []ArcSet
}

// Report is the result of one build.
type Report struct {
	Model       *Map
	Formats     map[string]RowFormat
	Diagnostics []core.Diagnostic
}

// Builder populates the readout model for a single unit. It is not safe for
// concurrent use; create one per report.
type Builder struct {
	unit     *core.Aero
	verifier core.Verifier
	logger   *slog.Logger
	msgs     *messages.Catalog
	arcSets  []ArcSet

	model   *Map
	formats map[string]RowFormat
	diags   []core.Diagnostic
}

// NewBuilder creates a builder for unit. verifier supplies construction weights.
func NewBuilder(unit *core.Aero, verifier core.Verifier, opts Options) *Builder {
	b := &Builder{
		unit:     unit,
		verifier: verifier,
		logger:   opts.Logger,
		msgs:     opts.Messages,
		arcSets:  opts.ArcSets,
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	if b.msgs == nil {
		b.msgs = messages.MustLoad("en")
	}
	if b.arcSets == nil {
		b.arcSets = DefaultArcSets
	}
	return b
}

// Build runs every section once and returns the model. Missing references
// are recorded as diagnostics and never stop the build.
func (b *Builder) Build() *Report {
	b.model = NewMap()
	b.formats = map[string]RowFormat{FormatArmorRow: ArmorRowFormat}
	b.diags = nil

	b.addBasicData()
	b.addArmorAndStructure()
	nameWidth := b.addEquipment()
	b.formats[FormatEquipmentRow] = EquipmentRowFormat(nameWidth)
	b.addFluff()
	b.model.Set("isOmni", Bool(b.unit.Omni))
	b.model.Set("isConventional", Bool(b.unit.Conventional))
	b.addSystems()
	if b.unit.Omni {
		b.addFixedOmni()
	}
	b.addWeaponBays()
	b.addTransportBays()
	b.addAmmo()
	b.addCrew()

	return &Report{
		Model:       b.model,
		Formats:     b.formats,
		Diagnostics: b.diags,
	}
}

func (b *Builder) diagnose(kind core.DiagnosticKind, subject, msg string) {
	b.diags = append(b.diags, core.Diagnostic{Kind: kind, Subject: subject, Message: msg})
	b.logger.Warn(msg, "kind", string(kind), "subject", subject, "unit", b.unit.FullName())
}

func (b *Builder) number(f float64) String {
	return String(b.msgs.Number(f))
}

func (b *Builder) addBasicData() {
	u := b.unit
	b.model.Set("fullName", String(u.FullName()))
	b.model.Set("chassis", String(u.Chassis))
	b.model.Set("model", String(u.Model))
	b.model.Set("year", Int(u.Year))
	b.model.Set("tonnage", b.number(u.Tonnage))
	b.model.Set("techBase", String(u.TechBase))
	b.model.Set("rulesLevel", String(u.RulesLevel))
	b.model.Set("role", String(u.Role))
	b.model.Set("source", String(u.Source))
	b.model.Set("battleValue", Int(u.BattleValue))
	b.model.Set("cost", b.number(u.Cost))
}

var systemOrder = []string{"CHASSIS", "ENGINE", "ARMOR", "COMMUNICATIONS", "TARGETING"}

func (b *Builder) addFluff() {
	f := b.unit.Fluff
	b.model.Set("fluffOverview", String(f.Overview))
	b.model.Set("fluffCapabilities", String(f.Capabilities))
	b.model.Set("fluffDeployment", String(f.Deployment))
	b.model.Set("fluffHistory", String(f.History))
	b.model.Set("manufacturer", String(f.Manufacturer))
	b.model.Set("factory", String(f.PrimaryFactory))

	keys := slices.DeleteFunc(slices.Clone(systemOrder), func(k string) bool {
		_, ok := f.SystemManufacturers[k]
		return !ok
	})
	var rest []string
	for key := range f.SystemManufacturers {
		if !slices.Contains(systemOrder, key) {
			rest = append(rest, key)
		}
	}
	slices.Sort(rest)

	systems := NewList()
	for _, key := range append(keys, rest...) {
		row := NewMap()
		row.Set("system", String(key))
		row.Set("name", String(f.SystemManufacturers[key]))
		systems.Append(row)
	}
	b.model.Set("systemManufacturers", systems)
}

func (b *Builder) addSystems() {
	u := b.unit
	b.model.Set("engineName", String(util.StripNotes(u.Engine.Name)))
	b.model.Set("engineMass", b.number(b.verifier.WeightEngine()))
	b.model.Set("safeThrust", Int(u.SafeThrust))
	b.model.Set("maxThrust", Int(u.MaxThrust))
	b.model.Set("si", Int(u.SI))
	b.model.Set("hsCount", heatSinkCount(u))
	b.model.Set("fuelPoints", Int(u.Fuel))
	b.model.Set("fuelMass", b.number(u.FuelTonnage))
	b.model.Set("hsMass", b.number(b.verifier.WeightHeatSinks()))
	if u.Cockpit == core.CockpitStandard {
		b.model.Set("cockpitType", String(b.msgs.String("TROView.cockpit")))
	} else {
		b.model.Set("cockpitType", String(u.Cockpit.String()))
	}
	b.model.Set("cockpitMass", b.number(b.verifier.WeightControls()))
	if name := armorTypeName(u.ArmorType); name != "" {
		b.model.Set("armorType", String(" ("+name+")"))
	} else {
		b.model.Set("armorType", String(""))
	}
	b.model.Set("armorFactor", Int(u.TotalArmor()))
	b.model.Set("armorMass", b.number(b.verifier.WeightArmor()))
}

// heatSinkCount shows double heat sink capacity in brackets, "10 [20]".
func heatSinkCount(u *core.Aero) Value {
	if u.HeatSinkType == core.HeatDouble {
		return String(strconv.Itoa(u.HeatSinks) + " [" + strconv.Itoa(u.HeatSinks*2) + "]")
	}
	return Int(u.HeatSinks)
}

// armorTypeName is empty for standard armor, which the readout leaves unnamed.
func armorTypeName(name string) string {
	switch name {
	case "", "Standard", "Standard Aerospace", "Standard Armor":
		return ""
	}
	return name
}

var armorGroups = [][]core.Location{
	{core.LocNose},
	{core.LocRightWing, core.LocLeftWing},
	{core.LocAft},
}

func (b *Builder) addArmorAndStructure() {
	values := NewList()
	for _, group := range armorGroups {
		row := NewMap()
		row.Set("location", String(groupName(group)))
		row.Set("armor", String(groupValue(group, func(loc core.Location) string {
			return strconv.Itoa(b.unit.ArmorAt(loc))
		})))
		values.Append(row)
	}
	b.model.Set("armorValues", values)

	if b.unit.HasPatchworkArmor() {
		patchwork := NewList()
		for _, group := range armorGroups {
			row := NewMap()
			row.Set("location", String(groupName(group)))
			row.Set("type", String(groupValue(group, b.unit.ArmorTypeAt)))
			patchwork.Append(row)
		}
		b.model.Set("patchworkByLoc", patchwork)
	}
}

func groupName(group []core.Location) string {
	names := make([]string, len(group))
	for i, loc := range group {
		names[i] = loc.Name()
	}
	return util.JoinLocationNames(names)
}

// groupValue shows one value when every location agrees, else "a/b".
func groupValue(group []core.Location, value func(core.Location) string) string {
	first := value(group[0])
	vals := []string{first}
	same := true
	for _, loc := range group[1:] {
		v := value(loc)
		same = same && v == first
		vals = append(vals, v)
	}
	if same {
		return first
	}
	return strings.Join(vals, "/")
}
