package record_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"fieldserve/internal/core/id"
	"fieldserve/internal/domain/inspections"
	"fieldserve/internal/infrastructure/storage/postgres"
)

const inspectionsTable = "inspections"

// Compile-time check that InspectionRepo implements inspections.Repository.
var _ inspections.Repository = (*InspectionRepo)(nil)

// InspectionRepo implements inspections.Repository.
type InspectionRepo struct {
	*BaseRecordRepo[*inspections.Inspection]
}

// NewInspectionRepo creates a new inspection repository.
func NewInspectionRepo(txm *postgres.TxManager) *InspectionRepo {
	return &InspectionRepo{
		BaseRecordRepo: NewBaseRecordRepo[*inspections.Inspection](
			txm,
			inspectionsTable,
			postgres.ExtractDBColumns[inspections.Inspection](),
			[]string{"model_number", "serial_number", "comment"},
			func() *inspections.Inspection { return &inspections.Inspection{} },
		),
	}
}

// ListByJob retrieves all inspections recorded for a job.
func (r *InspectionRepo) ListByJob(ctx context.Context, jobID id.ID) ([]*inspections.Inspection, error) {
	q := r.BaseSelect().
		Where(squirrel.Eq{"job_id": jobID}).
		OrderBy("created_at")

	return r.FindMany(ctx, q)
}
