package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"fieldserve/internal/core/entity"
	"fieldserve/internal/core/id"
)

type mockRecord struct {
	entity.BaseRecord
	JobNumber    string `db:"job_number" json:"jobNumber"`
	CustomerName string `db:"customer_name" json:"customerName"`
	Notes        string `db:"-" json:"notes"`
}

func TestExtractDBColumns_EmbeddedBase(t *testing.T) {
	cols := ExtractDBColumns[mockRecord]()

	expectedCols := []string{
		"id", "version", "created_at", "updated_at", "created_by", "updated_by",
		"job_number", "customer_name",
	}

	for _, expected := range expectedCols {
		assert.Contains(t, cols, expected)
	}
	assert.NotContains(t, cols, "-")
	assert.NotContains(t, cols, "notes")
}

func TestStructToMap_EmbeddedBase(t *testing.T) {
	now := time.Now().UTC()
	rec := mockRecord{
		BaseRecord: entity.BaseRecord{
			ID:        id.New(),
			Version:   5,
			CreatedAt: now,
			UpdatedAt: now,
			CreatedBy: "tech@example.com",
		},
		JobNumber:    "JOB-2026-00042",
		CustomerName: "Acme HVAC",
		Notes:        "not persisted",
	}

	m := StructToMap(rec)

	assert.Equal(t, rec.ID, m["id"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, now, m["created_at"])
	assert.Equal(t, "tech@example.com", m["created_by"])
	assert.Equal(t, "JOB-2026-00042", m["job_number"])
	assert.Equal(t, "Acme HVAC", m["customer_name"])
	assert.NotContains(t, m, "notes")
}
