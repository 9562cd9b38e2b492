// pkg/core/readout.go
package core

import "time"

// Verifier exposes construction weights computed for a unit.
type Verifier interface {
	WeightEngine() float64
	WeightHeatSinks() float64
	WeightControls() float64
	WeightArmor() float64
}

// StaticWeights is a Verifier backed by precomputed values.
type StaticWeights struct {
	Engine    float64
	HeatSinks float64
	Controls  float64
	Armor     float64
}

func (w StaticWeights) WeightEngine() float64    { return w.Engine }
func (w StaticWeights) WeightHeatSinks() float64 { return w.HeatSinks }
func (w StaticWeights) WeightControls() float64  { return w.Controls }
func (w StaticWeights) WeightArmor() float64     { return w.Armor }

// DiagnosticKind classifies a recoverable build problem.
type DiagnosticKind string

const (
	DiagMissingEquipment DiagnosticKind = "missing-equipment"
	DiagUnresolvedBay    DiagnosticKind = "unresolved-bay-type"
	DiagInvalidReference DiagnosticKind = "invalid-reference"
)

// Diagnostic records an equipment problem that was skipped during a build.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind"`
	Subject string         `json:"subject"`
	Message string         `json:"message"`
}

// Readout is a generated Technical Readout.
type Readout struct {
	ID          string
	UnitName    string
	Chassis     string
	Model       string
	Format      string
	GeneratedAt time.Time
	Document    string
	ModelJSON   []byte
	Diagnostics []Diagnostic
}
