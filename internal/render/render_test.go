package render

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trokit/aerotro/internal/tro"
	"github.com/trokit/aerotro/pkg/core"
)

func testReport(t *testing.T) *tro.Report {
	t.Helper()
	barracuda := &core.EquipmentType{Name: "Barracuda", Kind: core.KindWeapon, Heat: 10, ShortAV: 3, Capital: true, AmmoKind: "Barracuda"}
	barracudaAmmo := &core.EquipmentType{Name: "Barracuda Ammo", Kind: core.KindAmmo, Tonnage: 30, AmmoKind: "Barracuda"}
	laser := &core.EquipmentType{Name: "Medium Laser", Kind: core.KindWeapon, Tonnage: 1, Heat: 3, ShortAV: 5}
	bay := &core.EquipmentType{Name: "Capital Missile Bay", Kind: core.KindBay}

	unit := &core.Aero{
		Chassis:      "Lola & Sons",
		Model:        "LS-1",
		Tonnage:      60,
		Engine:       core.Engine{Name: "240 Fusion Engine"},
		SafeThrust:   5,
		MaxThrust:    8,
		SI:           6,
		HeatSinkType: core.HeatDouble,
		HeatSinks:    10,
		ArmorType:    "Ferro-Aluminum",
		Patchwork:    true,
		ArmorTypes:   map[core.Location]string{core.LocAft: "Reactive"},
		Armor: map[core.Location]int{
			core.LocNose: 24, core.LocRightWing: 18, core.LocLeftWing: 18, core.LocAft: 12,
		},
		Mounts: []*core.Mount{
			{Type: laser, Location: core.LocNose},
			{Type: barracuda, Location: core.LocNose},
			{Type: barracudaAmmo, Location: core.LocNose, ShotsLeft: 2},
		},
		WeaponBays: []*core.WeaponBay{
			{Type: bay, Location: core.LocNose, Weapons: []int{0, 1}, Ammo: []int{2}},
		},
		TransportBays: []*core.TransportBay{{Kind: "Cargo", Capacity: 50, Doors: 1}},
		Crew:          core.Crew{Officers: 2},
	}
	b := tro.NewBuilder(unit, core.StaticWeights{Engine: 12, Armor: 3}, tro.Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return b.Build()
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New()
	require.NoError(t, err)
	return r
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"TEXT", FormatText, false},
		{"txt", FormatText, false},
		{"html", FormatHTML, false},
		{"md", FormatMarkdown, false},
		{"markdown", FormatMarkdown, false},
		{"pdf", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTemplateFileName(t *testing.T) {
	assert.Equal(t, "aero.html.tmpl", TemplateFileName(FormatHTML))
	assert.Equal(t, "aero.md.tmpl", TemplateFileName(FormatMarkdown))
	assert.Equal(t, "aero.tmpl", TemplateFileName(FormatText))
	assert.Equal(t, "aero.tmpl", TemplateFileName(Format("rtf")))
}

func TestFormatExt(t *testing.T) {
	assert.Equal(t, ".txt", FormatText.Ext())
	assert.Equal(t, ".html", FormatHTML.Ext())
	assert.Equal(t, ".md", FormatMarkdown.Ext())
}

func TestRender_Text(t *testing.T) {
	r := newTestRenderer(t)
	out, err := r.RenderString(testReport(t), FormatText)
	require.NoError(t, err)

	assert.Contains(t, out, "Lola & Sons LS-1")
	assert.Contains(t, out, "Heat Sinks: 10 [20]")
	assert.Contains(t, out, "Armor Factor (Ferro-Aluminum): 72")
	assert.Contains(t, out, tro.ArmorRowFormat.Format("Nose", "24"))
	assert.Contains(t, out, tro.ArmorRowFormat.Format("Right/Left Wing", "18"))
	assert.Contains(t, out, "Patchwork Armor")
	assert.Contains(t, out, tro.ArmorRowFormat.Format("Aft", "Reactive"))
	assert.Contains(t, out, "Nose (13 Heat)")
	assert.Contains(t, out, "Capital Missile Bay: 1 Barracuda (2 shots)")
	assert.Contains(t, out, "SRV 4(35)")
	assert.Contains(t, out, "Cargo: 50 tons (1 doors)")
	assert.Contains(t, out, "Crew: 2 officers")
	assert.NotContains(t, out, "<no value>")
}

func TestRender_Markdown(t *testing.T) {
	r := newTestRenderer(t)
	out, err := r.RenderString(testReport(t), FormatMarkdown)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "# Lola & Sons LS-1"))
	assert.Contains(t, out, "| Heat Sinks | 10 [20] |")
	assert.Contains(t, out, "| Aft | 12 | Reactive |")
	assert.Contains(t, out, "### Nose (13 Heat)")
	assert.Contains(t, out, "| Capital Missile | 1 Barracuda (2 shots) | 13 | 4(35) |")
	assert.Contains(t, out, "| Cargo | 50 tons | 1 |")
	assert.NotContains(t, out, "<no value>")
}

func TestRender_HTMLEscapes(t *testing.T) {
	r := newTestRenderer(t)
	out, err := r.RenderString(testReport(t), FormatHTML)
	require.NoError(t, err)

	assert.Contains(t, out, "<h1>Lola &amp; Sons LS-1</h1>")
	assert.Contains(t, out, "<td>Heat Sinks</td><td>10 [20]</td>")
	assert.Contains(t, out, "<h3>Nose (13 Heat)</h3>")
	assert.Contains(t, out, "<td>Reactive</td>")
}

func TestRender_UniformArmorHasNoPatchworkSection(t *testing.T) {
	report := testReport(t)
	report.Model.Delete("patchworkByLoc")

	r := newTestRenderer(t)
	out, err := r.RenderString(report, FormatText)
	require.NoError(t, err)
	assert.NotContains(t, out, "Patchwork Armor")
}

func TestRender_RendererIsReusable(t *testing.T) {
	r := newTestRenderer(t)
	report := testReport(t)
	first, err := r.RenderString(report, FormatText)
	require.NoError(t, err)
	second, err := r.RenderString(report, FormatText)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "a, b", join([]any{"a", "b"}, ", "))
	assert.Equal(t, "a/b", join([]string{"a", "b"}, "/"))
	assert.Equal(t, "", join(nil, ", "))
	assert.Equal(t, "7", join(7, ", "))
}

func TestPretty(t *testing.T) {
	out, err := Pretty("# Corsair\n\nA heavy fighter.", 80)
	require.NoError(t, err)
	assert.Contains(t, out, "Corsair")
	assert.Contains(t, out, "A heavy fighter.")
}
