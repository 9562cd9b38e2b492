// pkg/core/bay.go
package core

import (
	"fmt"
	"strings"
)

// TransportBay is a cargo, vehicle or personnel bay.
type TransportBay struct {
	Kind     string
	Capacity float64
	Doors    int
}

var quartersKinds = map[string]bool{
	"crew quarters":         true,
	"first class quarters":  true,
	"second class quarters": true,
	"steerage quarters":     true,
	"standard quarters":     true,
}

// IsQuarters reports whether the bay houses crew or passengers.
func (b *TransportBay) IsQuarters() bool {
	return quartersKinds[normalizeKind(b.Kind)]
}

func (b *TransportBay) String() string {
	return fmt.Sprintf("%s bay (capacity %g, %d doors)", b.Kind, b.Capacity, b.Doors)
}

// BayData describes a physical transport bay type.
type BayData struct {
	DisplayName string
	Cargo       bool
}

var bayTypes = map[string]BayData{
	"cargo":               {DisplayName: "Cargo", Cargo: true},
	"refrigerated cargo":  {DisplayName: "Refrigerated Cargo", Cargo: true},
	"insulated cargo":     {DisplayName: "Insulated Cargo", Cargo: true},
	"liquid cargo":        {DisplayName: "Liquid Cargo", Cargo: true},
	"livestock cargo":     {DisplayName: "Livestock Cargo", Cargo: true},
	"fighter":             {DisplayName: "Fighter"},
	"small craft":         {DisplayName: "Small Craft"},
	"mech":                {DisplayName: "BattleMech"},
	"protomech":           {DisplayName: "ProtoMech"},
	"light vehicle":       {DisplayName: "Light Vehicle"},
	"heavy vehicle":       {DisplayName: "Heavy Vehicle"},
	"super heavy vehicle": {DisplayName: "Super Heavy Vehicle"},
	"foot infantry":       {DisplayName: "Infantry (Foot)"},
	"jump infantry":       {DisplayName: "Infantry (Jump)"},
	"motorized infantry":  {DisplayName: "Infantry (Motorized)"},
	"mechanized infantry": {DisplayName: "Infantry (Mechanized)"},
	"battle armor":        {DisplayName: "Battle Armor"},
}

// LookupBayType classifies a transport bay. The second result is false when
// the bay kind is not a known physical bay type.
func LookupBayType(b *TransportBay) (BayData, bool) {
	d, ok := bayTypes[normalizeKind(b.Kind)]
	return d, ok
}

func normalizeKind(kind string) string {
	kind = strings.ToLower(strings.TrimSpace(kind))
	return strings.TrimSuffix(kind, " bay")
}
