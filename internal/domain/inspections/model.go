// Package inspections provides equipment inspections recorded against jobs.
package inspections

import (
	"context"
	"time"

	"fieldserve/internal/core/apperror"
	"fieldserve/internal/core/entity"
	"fieldserve/internal/core/id"
)

// UnitType values for the inspected equipment's fuel.
const (
	UnitGas      = "Gas"
	UnitElectric = "Electric"
)

// SystemType values for the inspected equipment's configuration.
const (
	SystemRTU   = "RTU"
	SystemSplit = "Split System"
)

// Inspection captures the equipment a technician surveyed during a visit.
type Inspection struct {
	entity.BaseRecord

	JobID id.ID `db:"job_id" json:"jobId"`

	ModelNumber  string `db:"model_number" json:"modelNumber,omitempty"`
	SerialNumber string `db:"serial_number" json:"serialNumber,omitempty"`

	// Age of the unit in years
	Age *int `db:"age" json:"age,omitempty"`

	Tonnage    string `db:"tonnage" json:"tonnage,omitempty"`
	UnitType   string `db:"unit_type" json:"unitType,omitempty"`
	SystemType string `db:"system_type" json:"systemType,omitempty"`

	Comment string `db:"comment" json:"comment,omitempty"`

	Completed   bool       `db:"completed" json:"completed"`
	CompletedAt *time.Time `db:"completed_at" json:"completedAt,omitempty"`
}

// NewInspection creates a new inspection for a job.
func NewInspection(jobID id.ID) *Inspection {
	return &Inspection{
		BaseRecord: entity.NewBaseRecord(),
		JobID:      jobID,
	}
}

// Complete marks the inspection finished.
func (i *Inspection) Complete() {
	now := time.Now().UTC()
	i.Completed = true
	i.CompletedAt = &now
}

// Validate implements entity.Validatable.
func (i *Inspection) Validate(ctx context.Context) error {
	if id.IsNil(i.JobID) {
		return apperror.NewValidation("job is required").
			WithDetail("field", "jobId")
	}
	if i.Age != nil && *i.Age < 0 {
		return apperror.NewValidation("age must not be negative").
			WithDetail("field", "age")
	}
	return nil
}
