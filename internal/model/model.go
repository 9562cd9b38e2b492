package model

import (
	"time"

	"gorm.io/datatypes"
)

////////////////////////
// DATABASE STRUCTURES //
////////////////////////

// DatabaseModels is a list of all the structs exported here which represent tables in the database schema
var DatabaseModels = []interface{}{
	&Readout{},
}

// Readout is a generated Technical Readout
type Readout struct {
	ID          string         `json:"id" gorm:"primaryKey;size:36"`
	UnitName    string         `json:"unitName" gorm:"size:255;index"`
	Chassis     string         `json:"chassis" gorm:"size:127"`
	ModelName   string         `json:"model" gorm:"size:127"`
	Format      string         `json:"format" gorm:"size:16"`
	GeneratedAt time.Time      `json:"generatedAt" gorm:"index"`
	Document    string         `json:"document" gorm:"type:text"`
	ReportModel datatypes.JSON `json:"reportModel"`
	Diagnostics datatypes.JSON `json:"diagnostics"`
}

func (*Readout) TableName() string {
	return "readouts"
}
