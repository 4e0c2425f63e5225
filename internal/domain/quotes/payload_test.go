package quotes

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldserve/internal/core/id"
	"fieldserve/internal/domain/inspections"
	"fieldserve/internal/domain/jobs"
	"fieldserve/internal/domain/replacements"
)

func testJob() *jobs.Job {
	job := jobs.NewJob("Dana Whitfield", "48 Alder Ct", jobs.TypeReplacement)
	job.JobNumber = "JOB-2026-00017"
	email := "dana@example.com"
	job.CustomerEmail = &email
	return job
}

func TestAssemble_ReplacementDualRepresentation(t *testing.T) {
	job := testJob()
	r1 := replacements.NewReplacement(job.ID)
	r1.Phase2.Cost = money("4200")
	r1.Labor = money("1800")
	r1.Accessories = []replacements.CostedItem{{Name: "curb adapter", Cost: money("0")}}
	r1.NeedsCrane = true
	r1.Recalculate() // 10000

	r2 := replacements.NewReplacement(job.ID)
	r2.SelectedPhase = replacements.PhasePremium
	r2.Phase3.Cost = money("900")
	r2.Recalculate() // 1500

	sel := NewSelection(TypeReplacement)
	sel.ToggleRecord(r1.ID)
	sel.ToggleRecord(r2.ID)

	payload, err := Assemble(AssembleInput{
		Job:         job,
		Selection:   sel,
		Sources:     Sources{Replacements: []*replacements.Replacement{r1, r2}},
		QuoteNumber: "QUOTE-1700000000000",
		QuoteToken:  "tok",
	})
	require.NoError(t, err)

	// Both shapes present and consistent
	require.Len(t, payload.ReplacementData, 2)
	require.Len(t, payload.ReplacementDataByID, 2)
	entry, ok := payload.ReplacementDataByID[r1.ID.String()]
	require.True(t, ok)
	assert.Equal(t, "phase2", entry.SelectedPhase)
	assert.True(t, entry.Labor.Equal(*money("1800")))
	assert.True(t, entry.NeedsCrane)
	require.Len(t, entry.Accessories, 1)
	assert.Equal(t, "curb adapter", entry.Accessories[0].Name)
	assert.Equal(t, "phase3", payload.ReplacementDataByID[r2.ID.String()].SelectedPhase)

	// Multi-select sums both estimates
	assert.True(t, payload.TotalAmount.Equal(*money("11500")), "total = %s", payload.TotalAmount)

	// The list is snake_case, the breakdown camelCase
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	s := string(raw)
	assert.Contains(t, s, `"replacementData"`)
	assert.Contains(t, s, `"replacementDataById"`)
	assert.Contains(t, s, `"selected_phase"`)
	assert.Contains(t, s, `"refrigeration_recovery"`)
	assert.Contains(t, s, `"needs_crane"`)
	assert.Contains(t, s, `"refrigerationRecovery"`)
	assert.Contains(t, s, `"needsCrane"`)
}

func TestAssemble_InspectionForwardsEquipmentAttributes(t *testing.T) {
	job := testJob()
	job.JobType = jobs.TypeInspection

	age := 12
	insp := inspections.NewInspection(job.ID)
	insp.ModelNumber = "48TC-06"
	insp.SerialNumber = "SN-4417"
	insp.Age = &age
	insp.Tonnage = "5"
	insp.UnitType = inspections.UnitGas
	insp.SystemType = inspections.SystemRTU
	insp.Comment = "heat exchanger cracked"

	other := inspections.NewInspection(job.ID)

	sel := NewSelection(TypeInspection)
	sel.ToggleRecord(insp.ID)

	payload, err := Assemble(AssembleInput{
		Job:         job,
		Selection:   sel,
		Sources:     Sources{Inspections: []*inspections.Inspection{insp, other}},
		QuoteNumber: "QUOTE-1",
		QuoteToken:  "tok",
	})
	require.NoError(t, err)

	require.Len(t, payload.Inspections, 1)
	entry := payload.Inspections[0]
	assert.Equal(t, "48TC-06", entry.ModelNumber)
	assert.Equal(t, "SN-4417", entry.SerialNumber)
	require.NotNil(t, entry.Age)
	assert.Equal(t, 12, *entry.Age)
	assert.Equal(t, "5", entry.Tonnage)
	assert.Equal(t, inspections.UnitGas, entry.UnitType)
	assert.Equal(t, inspections.SystemRTU, entry.SystemType)
	assert.Equal(t, "heat exchanger cracked", entry.Comment)

	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"inspectionData"`)
	assert.Contains(t, string(raw), `"model_number"`)
	assert.Contains(t, string(raw), `"unit_type"`)
}

func TestAssemble_RepairForwardsPartsOnly(t *testing.T) {
	job := testJob()
	job.JobType = jobs.TypeRepair
	job.Items = []jobs.JobItem{
		{LineID: id.New(), ItemType: jobs.ItemPart, Name: "blower motor", Quantity: 1, TotalCost: money("450")},
		{LineID: id.New(), ItemType: jobs.ItemLabor, Name: "labor", Quantity: 2, TotalCost: money("240")},
	}

	sel := NewSelection(TypeRepair)
	sel.ToggleItem(job.Items[0].LineID)
	sel.ToggleItem(job.Items[1].LineID)

	payload, err := Assemble(AssembleInput{
		Job:         job,
		Selection:   sel,
		Sources:     Sources{JobItems: job.Items},
		QuoteNumber: "QUOTE-1",
		QuoteToken:  "tok",
	})
	require.NoError(t, err)

	require.Len(t, payload.RepairItems, 1)
	assert.Equal(t, "blower motor", payload.RepairItems[0].Name)
	// The non-forwarded labor line still contributes to the total
	assert.True(t, payload.TotalAmount.Equal(*money("690")))
}

func TestAssemble_ContactEmailOverride(t *testing.T) {
	job := testJob()
	sel := NewSelection(TypeInspection)
	sel.ToggleRecord(id.New())

	payload, err := Assemble(AssembleInput{
		Job: job, Selection: sel, QuoteNumber: "QUOTE-1", QuoteToken: "tok",
		ContactEmail: "tenant@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "tenant@example.com", payload.CustomerEmail)

	payload, err = Assemble(AssembleInput{
		Job: job, Selection: sel, QuoteNumber: "QUOTE-1", QuoteToken: "tok",
	})
	require.NoError(t, err)
	assert.Equal(t, "dana@example.com", payload.CustomerEmail)
}

func TestAssemble_Idempotent(t *testing.T) {
	job := testJob()
	r := replacements.NewReplacement(job.ID)
	r.Phase2.Cost = money("600")
	r.Recalculate()

	sel := NewSelection(TypeReplacement)
	sel.ToggleRecord(r.ID)

	in := AssembleInput{
		Job:         job,
		Selection:   sel,
		Sources:     Sources{Replacements: []*replacements.Replacement{r}},
		QuoteNumber: "QUOTE-42",
		QuoteToken:  "fixed-token",
	}

	first, err := Assemble(in)
	require.NoError(t, err)
	second, err := Assemble(in)
	require.NoError(t, err)

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	assert.JSONEq(t, string(a), string(b))
}

func TestAssemble_EmptySelectionRejected(t *testing.T) {
	job := testJob()
	_, err := Assemble(AssembleInput{
		Job:         job,
		Selection:   NewSelection(TypeReplacement),
		QuoteNumber: "QUOTE-1",
		QuoteToken:  "tok",
	})
	require.Error(t, err)
}
