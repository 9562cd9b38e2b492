// Package convert maps between GORM models and core models
package convert

import (
	"encoding/json"

	"gorm.io/datatypes"

	"github.com/trokit/aerotro/internal/model"
	"github.com/trokit/aerotro/pkg/core"
)

// diagnosticsToJSON converts diagnostics to datatypes.JSON for DB storage.
func diagnosticsToJSON(diags []core.Diagnostic) datatypes.JSON {
	if len(diags) == 0 {
		return datatypes.JSON("[]")
	}
	data, err := json.Marshal(diags)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(data)
}

// CoreToReadout converts a core.Readout to a GORM Readout.
func CoreToReadout(r core.Readout) model.Readout {
	reportModel := datatypes.JSON("{}")
	if len(r.ModelJSON) > 0 {
		reportModel = datatypes.JSON(r.ModelJSON)
	}
	return model.Readout{
		ID:          r.ID,
		UnitName:    r.UnitName,
		Chassis:     r.Chassis,
		ModelName:   r.Model,
		Format:      r.Format,
		GeneratedAt: r.GeneratedAt,
		Document:    r.Document,
		ReportModel: reportModel,
		Diagnostics: diagnosticsToJSON(r.Diagnostics),
	}
}

// ReadoutToCore converts a GORM Readout to a core.Readout.
func ReadoutToCore(r model.Readout) core.Readout {
	var diags []core.Diagnostic
	if len(r.Diagnostics) > 0 {
		_ = json.Unmarshal(r.Diagnostics, &diags)
	}
	return core.Readout{
		ID:          r.ID,
		UnitName:    r.UnitName,
		Chassis:     r.Chassis,
		Model:       r.ModelName,
		Format:      r.Format,
		GeneratedAt: r.GeneratedAt,
		Document:    r.Document,
		ModelJSON:   []byte(r.ReportModel),
		Diagnostics: diags,
	}
}
