package parser

import "github.com/trokit/aerotro/internal/equipment"

// UnitFile is the on-disk form of an aerospace unit. The same tags serve
// YAML and JSON unit files.
type UnitFile struct {
	Chassis      string  `yaml:"chassis" json:"chassis"`
	Model        string  `yaml:"model" json:"model"`
	Year         int     `yaml:"year" json:"year"`
	Tonnage      float64 `yaml:"tonnage" json:"tonnage"`
	TechBase     string  `yaml:"techBase" json:"techBase"`
	RulesLevel   string  `yaml:"rulesLevel" json:"rulesLevel"`
	Role         string  `yaml:"role" json:"role"`
	Source       string  `yaml:"source" json:"source"`
	BattleValue  int     `yaml:"battleValue" json:"battleValue"`
	Cost         float64 `yaml:"cost" json:"cost"`
	Omni         bool    `yaml:"omni" json:"omni"`
	Conventional bool    `yaml:"conventional" json:"conventional"`

	Engine              EngineSpec   `yaml:"engine" json:"engine"`
	Thrust              ThrustSpec   `yaml:"thrust" json:"thrust"`
	StructuralIntegrity int          `yaml:"structuralIntegrity" json:"structuralIntegrity"`
	HeatSinks           HeatSinkSpec `yaml:"heatSinks" json:"heatSinks"`
	Fuel                FuelSpec     `yaml:"fuel" json:"fuel"`
	Cockpit             string       `yaml:"cockpit" json:"cockpit"`
	Armor               ArmorSpec    `yaml:"armor" json:"armor"`
	Weights             WeightSpec   `yaml:"weights" json:"weights"`

	Equipment      []MountSpec            `yaml:"equipment" json:"equipment"`
	WeaponBays     []WeaponBaySpec        `yaml:"weaponBays" json:"weaponBays"`
	TransportBays  []TransportBaySpec     `yaml:"transportBays" json:"transportBays"`
	Crew           CrewSpec               `yaml:"crew" json:"crew"`
	Fluff          FluffSpec              `yaml:"fluff" json:"fluff"`
	EquipmentTypes []equipment.Definition `yaml:"equipmentTypes" json:"equipmentTypes"`
}

type EngineSpec struct {
	Name   string `yaml:"name" json:"name"`
	Rating int    `yaml:"rating" json:"rating"`
}

type ThrustSpec struct {
	Safe int `yaml:"safe" json:"safe"`
	Max  int `yaml:"max" json:"max"`
}

type HeatSinkSpec struct {
	Type  string `yaml:"type" json:"type"` // single or double
	Count int    `yaml:"count" json:"count"`
}

type FuelSpec struct {
	Points  int     `yaml:"points" json:"points"`
	Tonnage float64 `yaml:"tonnage" json:"tonnage"`
}

// ArmorSpec keys Values and Types by location abbreviation or name.
type ArmorSpec struct {
	Type      string            `yaml:"type" json:"type"`
	Patchwork bool              `yaml:"patchwork" json:"patchwork"`
	Values    map[string]int    `yaml:"values" json:"values"`
	Types     map[string]string `yaml:"types" json:"types"`
}

// WeightSpec carries construction weights computed by an external rules check.
type WeightSpec struct {
	Engine    float64 `yaml:"engine" json:"engine"`
	HeatSinks float64 `yaml:"heatSinks" json:"heatSinks"`
	Controls  float64 `yaml:"controls" json:"controls"`
	Armor     float64 `yaml:"armor" json:"armor"`
}

// MountSpec is one equipment entry; its index is the equipment number.
type MountSpec struct {
	Type      string `yaml:"type" json:"type"`
	Location  string `yaml:"location" json:"location"`
	Shots     *int   `yaml:"shots" json:"shots"`
	Rear      bool   `yaml:"rear" json:"rear"`
	OmniPod   bool   `yaml:"omniPod" json:"omniPod"`
	Destroyed bool   `yaml:"destroyed" json:"destroyed"`
}

type WeaponBaySpec struct {
	Type     string `yaml:"type" json:"type"`
	Location string `yaml:"location" json:"location"`
	Arc      string `yaml:"arc" json:"arc"`
	Weapons  []int  `yaml:"weapons" json:"weapons"`
	Ammo     []int  `yaml:"ammo" json:"ammo"`
}

type TransportBaySpec struct {
	Kind     string  `yaml:"kind" json:"kind"`
	Capacity float64 `yaml:"capacity" json:"capacity"`
	Doors    int     `yaml:"doors" json:"doors"`
}

type CrewSpec struct {
	Officers           int `yaml:"officers" json:"officers"`
	Enlisted           int `yaml:"enlisted" json:"enlisted"`
	Gunners            int `yaml:"gunners" json:"gunners"`
	Pilots             int `yaml:"pilots" json:"pilots"`
	BayPersonnel       int `yaml:"bayPersonnel" json:"bayPersonnel"`
	Passengers         int `yaml:"passengers" json:"passengers"`
	Marines            int `yaml:"marines" json:"marines"`
	BattleArmorMarines int `yaml:"battleArmorMarines" json:"battleArmorMarines"`
	Patients           int `yaml:"patients" json:"patients"`
}

type FluffSpec struct {
	Overview            string            `yaml:"overview" json:"overview"`
	Capabilities        string            `yaml:"capabilities" json:"capabilities"`
	Deployment          string            `yaml:"deployment" json:"deployment"`
	History             string            `yaml:"history" json:"history"`
	Manufacturer        string            `yaml:"manufacturer" json:"manufacturer"`
	PrimaryFactory      string            `yaml:"primaryFactory" json:"primaryFactory"`
	SystemManufacturers map[string]string `yaml:"systemManufacturers" json:"systemManufacturers"`
}
