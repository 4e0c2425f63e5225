package dto

import (
	"fieldserve/internal/core/id"
	"fieldserve/internal/domain/inspections"
)

// CreateInspectionRequest for recording an inspection against a job.
type CreateInspectionRequest struct {
	JobID        id.ID  `json:"jobId" binding:"required"`
	ModelNumber  string `json:"modelNumber"`
	SerialNumber string `json:"serialNumber"`
	Age          *int   `json:"age"`
	Tonnage      string `json:"tonnage"`
	UnitType     string `json:"unitType"`
	SystemType   string `json:"systemType"`
	Comment      string `json:"comment"`
}

// ToEntity converts the request to a new Inspection.
func (r CreateInspectionRequest) ToEntity() *inspections.Inspection {
	insp := inspections.NewInspection(r.JobID)
	insp.ModelNumber = r.ModelNumber
	insp.SerialNumber = r.SerialNumber
	insp.Age = r.Age
	insp.Tonnage = r.Tonnage
	insp.UnitType = r.UnitType
	insp.SystemType = r.SystemType
	insp.Comment = r.Comment
	return insp
}

// UpdateInspectionRequest for updating inspections. Nil fields are left unchanged.
type UpdateInspectionRequest struct {
	ModelNumber  *string `json:"modelNumber"`
	SerialNumber *string `json:"serialNumber"`
	Age          *int    `json:"age"`
	Tonnage      *string `json:"tonnage"`
	UnitType     *string `json:"unitType"`
	SystemType   *string `json:"systemType"`
	Comment      *string `json:"comment"`
	Version      int     `json:"version" binding:"required,min=1"`
}

// ApplyTo applies non-nil fields to the existing inspection.
func (r UpdateInspectionRequest) ApplyTo(insp *inspections.Inspection) {
	if r.ModelNumber != nil {
		insp.ModelNumber = *r.ModelNumber
	}
	if r.SerialNumber != nil {
		insp.SerialNumber = *r.SerialNumber
	}
	if r.Age != nil {
		insp.Age = r.Age
	}
	if r.Tonnage != nil {
		insp.Tonnage = *r.Tonnage
	}
	if r.UnitType != nil {
		insp.UnitType = *r.UnitType
	}
	if r.SystemType != nil {
		insp.SystemType = *r.SystemType
	}
	if r.Comment != nil {
		insp.Comment = *r.Comment
	}
	insp.SetVersion(r.Version)
}
