package quotes

import (
	"fieldserve/internal/core/apperror"
	"fieldserve/internal/core/types"
	"fieldserve/internal/domain/jobs"
	"fieldserve/internal/domain/replacements"
)

// QuotePayload is the request body sent to the PDF generator. Field names
// match the generator's contract, not internal naming.
type QuotePayload struct {
	JobID     string `json:"jobId"`
	JobNumber string `json:"jobNumber"`

	QuoteType   QuoteType `json:"quoteType"`
	QuoteNumber string    `json:"quoteNumber"`
	QuoteToken  string    `json:"quoteToken"`

	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone,omitempty"`
	Address       string `json:"address"`

	TotalAmount types.Money `json:"totalAmount"`

	Inspections []InspectionPayload `json:"inspectionData,omitempty"`

	// Replacement carries both shapes the document template consumes:
	// an ordered snake_case list and a camelCase breakdown keyed by
	// record ID.
	ReplacementData     []ReplacementPayload         `json:"replacementData,omitempty"`
	ReplacementDataByID map[string]ReplacementDetail `json:"replacementDataById,omitempty"`

	RepairItems []RepairItemPayload `json:"jobItems,omitempty"`

	PMQuotes []MaintenancePayload `json:"pmQuotes,omitempty"`
}

// InspectionPayload is one inspected unit in a quote document. Only the
// equipment attributes are forwarded; bookkeeping fields are stripped.
type InspectionPayload struct {
	ID           string `json:"id"`
	ModelNumber  string `json:"model_number,omitempty"`
	SerialNumber string `json:"serial_number,omitempty"`
	Age          *int   `json:"age,omitempty"`
	Tonnage      string `json:"tonnage,omitempty"`
	UnitType     string `json:"unit_type,omitempty"`
	SystemType   string `json:"system_type,omitempty"`
	Comment      string `json:"comment,omitempty"`
}

// PhasePayload is one priced tier inside a replacement entry. Costs are
// coerced: an unpriced phase renders as zero.
type PhasePayload struct {
	Description string      `json:"description"`
	Cost        types.Money `json:"cost"`
}

// CostedItemPayload is one add-on line inside a replacement entry.
type CostedItemPayload struct {
	Name string      `json:"name"`
	Cost types.Money `json:"cost"`
}

// ReplacementPayload is one replacement estimate in the ordered list,
// snake_case per the generator's contract.
type ReplacementPayload struct {
	ID                    string              `json:"id"`
	SelectedPhase         string              `json:"selected_phase"`
	Phase1                PhasePayload        `json:"phase1"`
	Phase2                PhasePayload        `json:"phase2"`
	Phase3                PhasePayload        `json:"phase3"`
	Labor                 types.Money         `json:"labor"`
	RefrigerationRecovery types.Money         `json:"refrigeration_recovery"`
	StartUpCosts          types.Money         `json:"start_up_costs"`
	ThermostatStartup     types.Money         `json:"thermostat_startup"`
	RemovalCost           types.Money         `json:"removal_cost"`
	PermitCost            types.Money         `json:"permit_cost"`
	Accessories           []CostedItemPayload `json:"accessories"`
	AdditionalItems       []CostedItemPayload `json:"additional_items"`
	NeedsCrane            bool                `json:"needs_crane"`
	RequiresPermit        bool                `json:"requires_permit"`
	RequiresBigLadder     bool                `json:"requires_big_ladder"`
	Warranty              string              `json:"warranty"`
	TotalCost             types.Money         `json:"total_cost"`
}

// ReplacementDetail is the same entry reshaped in camelCase for the
// per-option cost breakdown keyed by record ID.
type ReplacementDetail struct {
	SelectedPhase         string              `json:"selectedPhase"`
	Phase1                PhasePayload        `json:"phase1"`
	Phase2                PhasePayload        `json:"phase2"`
	Phase3                PhasePayload        `json:"phase3"`
	Labor                 types.Money         `json:"labor"`
	RefrigerationRecovery types.Money         `json:"refrigerationRecovery"`
	StartUpCosts          types.Money         `json:"startUpCosts"`
	ThermostatStartup     types.Money         `json:"thermostatStartup"`
	RemovalCost           types.Money         `json:"removalCost"`
	PermitCost            types.Money         `json:"permitCost"`
	Accessories           []CostedItemPayload `json:"accessories"`
	AdditionalItems       []CostedItemPayload `json:"additionalItems"`
	NeedsCrane            bool                `json:"needsCrane"`
	RequiresPermit        bool                `json:"requiresPermit"`
	RequiresBigLadder     bool                `json:"requiresBigLadder"`
	Warranty              string              `json:"warranty"`
	TotalCost             types.Money         `json:"totalCost"`
}

// RepairItemPayload is one forwarded job item in a repair quote.
type RepairItemPayload struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Quantity    float64      `json:"quantity"`
	UnitCost    *types.Money `json:"unitCost,omitempty"`
	TotalCost   *types.Money `json:"totalCost,omitempty"`
}

// MaintenancePayload is one PM agreement in a quote document.
type MaintenancePayload struct {
	ID string `json:"id"`

	ChecklistTypes []string `json:"checklistTypes"`

	ComprehensiveVisitsPerYear int `json:"comprehensiveVisitsPerYear"`
	FilterVisitsPerYear        int `json:"filterVisitsPerYear"`

	ComprehensiveVisitCosts []types.Money `json:"comprehensiveVisitCosts"`
	FilterVisitCosts        []types.Money `json:"filterVisitCosts"`

	ComprehensiveDescription string `json:"comprehensiveDescription,omitempty"`
	FilterDescription        string `json:"filterDescription,omitempty"`

	ServicePeriod string `json:"servicePeriod,omitempty"`
	ScopeOfWork   string `json:"scopeOfWork,omitempty"`
}

// AssembleInput bundles everything the assembler needs. Token and number
// come from the caller so assembly stays pure: the same input always
// produces the same payload.
type AssembleInput struct {
	Job       *jobs.Job
	Selection Selection
	Sources   Sources

	QuoteNumber string
	QuoteToken  string

	// ContactEmail overrides the job's customer email when set
	ContactEmail string
}

// Assemble builds the PDF generator payload for a selection.
func Assemble(in AssembleInput) (*QuotePayload, error) {
	if in.Job == nil {
		return nil, apperror.NewValidation("job is required")
	}
	if err := in.Selection.Validate(); err != nil {
		return nil, err
	}

	email := in.ContactEmail
	if email == "" && in.Job.CustomerEmail != nil {
		email = *in.Job.CustomerEmail
	}

	p := &QuotePayload{
		JobID:         in.Job.ID.String(),
		JobNumber:     in.Job.JobNumber,
		QuoteType:     in.Selection.QuoteType,
		QuoteNumber:   in.QuoteNumber,
		QuoteToken:    in.QuoteToken,
		CustomerName:  in.Job.CustomerName,
		CustomerEmail: email,
		Address:       in.Job.Address,
		TotalAmount:   TotalFor(in.Selection, in.Sources),
	}
	if in.Job.CustomerPhone != nil {
		p.CustomerPhone = *in.Job.CustomerPhone
	}

	switch in.Selection.QuoteType {
	case TypeInspection:
		p.Inspections = buildInspections(in)
	case TypeReplacement:
		p.ReplacementData, p.ReplacementDataByID = buildReplacements(in)
	case TypeRepair:
		p.RepairItems = buildRepairItems(in)
	case TypeMaintenance:
		p.PMQuotes = buildMaintenance(in)
	}

	return p, nil
}

func buildInspections(in AssembleInput) []InspectionPayload {
	out := make([]InspectionPayload, 0, len(in.Selection.InspectionIDs))
	for _, insp := range in.Sources.Inspections {
		if !containsID(in.Selection.InspectionIDs, insp.ID) {
			continue
		}
		out = append(out, InspectionPayload{
			ID:           insp.ID.String(),
			ModelNumber:  insp.ModelNumber,
			SerialNumber: insp.SerialNumber,
			Age:          insp.Age,
			Tonnage:      insp.Tonnage,
			UnitType:     insp.UnitType,
			SystemType:   insp.SystemType,
			Comment:      insp.Comment,
		})
	}
	return out
}

func phasePayload(p replacements.PhaseOption) PhasePayload {
	return PhasePayload{Description: p.Description, Cost: types.Coerce(p.Cost)}
}

func costedItems(items []replacements.CostedItem) []CostedItemPayload {
	out := make([]CostedItemPayload, 0, len(items))
	for _, item := range items {
		out = append(out, CostedItemPayload{Name: item.Name, Cost: types.Coerce(item.Cost)})
	}
	return out
}

func buildReplacements(in AssembleInput) ([]ReplacementPayload, map[string]ReplacementDetail) {
	list := make([]ReplacementPayload, 0, len(in.Selection.ReplacementIDs))
	byID := make(map[string]ReplacementDetail, len(in.Selection.ReplacementIDs))
	for _, r := range in.Sources.Replacements {
		if !containsID(in.Selection.ReplacementIDs, r.ID) {
			continue
		}
		list = append(list, ReplacementPayload{
			ID:                    r.ID.String(),
			SelectedPhase:         string(r.SelectedPhase),
			Phase1:                phasePayload(r.Phase1),
			Phase2:                phasePayload(r.Phase2),
			Phase3:                phasePayload(r.Phase3),
			Labor:                 types.Coerce(r.Labor),
			RefrigerationRecovery: types.Coerce(r.RefrigerationRecovery),
			StartUpCosts:          types.Coerce(r.StartUpCosts),
			ThermostatStartup:     types.Coerce(r.ThermostatStartup),
			RemovalCost:           types.Coerce(r.RemovalCost),
			PermitCost:            types.Coerce(r.PermitCost),
			Accessories:           costedItems(r.Accessories),
			AdditionalItems:       costedItems(r.AdditionalItems),
			NeedsCrane:            r.NeedsCrane,
			RequiresPermit:        r.RequiresPermit,
			RequiresBigLadder:     r.RequiresBigLadder,
			Warranty:              r.Warranty,
			TotalCost:             r.TotalCost,
		})
		byID[r.ID.String()] = ReplacementDetail{
			SelectedPhase:         string(r.SelectedPhase),
			Phase1:                phasePayload(r.Phase1),
			Phase2:                phasePayload(r.Phase2),
			Phase3:                phasePayload(r.Phase3),
			Labor:                 types.Coerce(r.Labor),
			RefrigerationRecovery: types.Coerce(r.RefrigerationRecovery),
			StartUpCosts:          types.Coerce(r.StartUpCosts),
			ThermostatStartup:     types.Coerce(r.ThermostatStartup),
			RemovalCost:           types.Coerce(r.RemovalCost),
			PermitCost:            types.Coerce(r.PermitCost),
			Accessories:           costedItems(r.Accessories),
			AdditionalItems:       costedItems(r.AdditionalItems),
			NeedsCrane:            r.NeedsCrane,
			RequiresPermit:        r.RequiresPermit,
			RequiresBigLadder:     r.RequiresBigLadder,
			Warranty:              r.Warranty,
			TotalCost:             r.TotalCost,
		}
	}
	return list, byID
}

func buildRepairItems(in AssembleInput) []RepairItemPayload {
	forwardable := ForwardableItems(in.Selection, in.Sources.JobItems)
	out := make([]RepairItemPayload, 0, len(forwardable))
	for _, item := range forwardable {
		out = append(out, RepairItemPayload{
			Name:        item.Name,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitCost:    item.UnitCost,
			TotalCost:   item.TotalCost,
		})
	}
	return out
}

func buildMaintenance(in AssembleInput) []MaintenancePayload {
	out := make([]MaintenancePayload, 0, len(in.Selection.PMQuoteIDs))
	for _, q := range in.Sources.PMQuotes {
		if !containsID(in.Selection.PMQuoteIDs, q.ID) {
			continue
		}
		checklists := make([]string, 0, len(q.ChecklistTypes))
		for _, ct := range q.ChecklistTypes {
			checklists = append(checklists, string(ct))
		}
		out = append(out, MaintenancePayload{
			ID:                         q.ID.String(),
			ChecklistTypes:             checklists,
			ComprehensiveVisitsPerYear: q.ComprehensiveVisitsPerYear,
			FilterVisitsPerYear:        q.FilterVisitsPerYear,
			ComprehensiveVisitCosts:    q.ComprehensiveVisitCosts,
			FilterVisitCosts:           q.FilterVisitCosts,
			ComprehensiveDescription:   q.ComprehensiveDescription,
			FilterDescription:          q.FilterDescription,
			ServicePeriod:              q.ServicePeriod,
			ScopeOfWork:                q.ScopeOfWork,
		})
	}
	return out
}
