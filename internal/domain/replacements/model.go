// Package replacements provides system replacement estimates for jobs.
//
// A replacement is both a cost worksheet (three priced phase options plus
// itemized add-ons) and a quotable summary (a single customer-facing total).
// Only the selected phase's cost enters the total; the total is the direct
// cost marked up by dividing by the margin divisor, rounded to the nearest
// whole dollar.
package replacements

import (
	"context"

	"fieldserve/internal/core/apperror"
	"fieldserve/internal/core/entity"
	"fieldserve/internal/core/id"
	"fieldserve/internal/core/types"
)

// marginDivisor converts direct cost into customer price at a 40% margin.
var marginDivisor = types.MustMoney("0.6")

// PhaseKey identifies one of the three phase options.
type PhaseKey string

const (
	PhaseEconomy  PhaseKey = "phase1"
	PhaseStandard PhaseKey = "phase2"
	PhasePremium  PhaseKey = "phase3"
)

// PhaseOption is one priced tier of a replacement estimate.
// Stored as a JSONB column.
type PhaseOption struct {
	Description string       `json:"description"`
	Cost        *types.Money `json:"cost"`
}

// CostedItem is one named add-on line (accessory or additional item).
// Stored inside a JSONB array column.
type CostedItem struct {
	Name string       `json:"name"`
	Cost *types.Money `json:"cost"`
}

// Replacement represents a full-system replacement estimate for a job,
// optionally tied to the inspection that motivated it.
type Replacement struct {
	entity.BaseRecord

	JobID        id.ID  `db:"job_id" json:"jobId"`
	InspectionID *id.ID `db:"inspection_id" json:"inspectionId,omitempty"`

	// The three priced options; exactly one is selected per record
	Phase1        PhaseOption `db:"phase1" json:"phase1"`
	Phase2        PhaseOption `db:"phase2" json:"phase2"`
	Phase3        PhaseOption `db:"phase3" json:"phase3"`
	SelectedPhase PhaseKey    `db:"selected_phase" json:"selectedPhase"`

	// Scalar direct costs
	Labor                 *types.Money `db:"labor" json:"labor,omitempty"`
	RefrigerationRecovery *types.Money `db:"refrigeration_recovery" json:"refrigerationRecovery,omitempty"`
	StartUpCosts          *types.Money `db:"start_up_costs" json:"startUpCosts,omitempty"`
	ThermostatStartup     *types.Money `db:"thermostat_startup" json:"thermostatStartup,omitempty"`
	RemovalCost           *types.Money `db:"removal_cost" json:"removalCost,omitempty"`
	PermitCost            *types.Money `db:"permit_cost" json:"permitCost,omitempty"`

	// Itemized add-ons
	Accessories     []CostedItem `db:"accessories" json:"accessories"`
	AdditionalItems []CostedItem `db:"additional_items" json:"additionalItems"`

	// Site requirement flags
	NeedsCrane        bool `db:"needs_crane" json:"needsCrane"`
	RequiresPermit    bool `db:"requires_permit" json:"requiresPermit"`
	RequiresBigLadder bool `db:"requires_big_ladder" json:"requiresBigLadder"`

	Warranty string `db:"warranty" json:"warranty,omitempty"`

	// TotalCost is the customer-facing price derived from direct costs.
	// Recomputed on every save; never trusted from input.
	TotalCost types.Money `db:"total_cost" json:"totalCost"`
}

// NewReplacement creates a new replacement estimate for a job with the
// standard option preselected.
func NewReplacement(jobID id.ID) *Replacement {
	return &Replacement{
		BaseRecord:      entity.NewBaseRecord(),
		JobID:           jobID,
		Phase1:          PhaseOption{Description: "Economy Option"},
		Phase2:          PhaseOption{Description: "Standard Option"},
		Phase3:          PhaseOption{Description: "Premium Option"},
		SelectedPhase:   PhaseStandard,
		Accessories:     make([]CostedItem, 0),
		AdditionalItems: make([]CostedItem, 0),
	}
}

// Phase returns the option behind a phase key.
func (r *Replacement) Phase(key PhaseKey) PhaseOption {
	switch key {
	case PhaseEconomy:
		return r.Phase1
	case PhasePremium:
		return r.Phase3
	default:
		return r.Phase2
	}
}

// SelectedPhaseCost returns the selected option's cost, zero when unset.
func (r *Replacement) SelectedPhaseCost() types.Money {
	return types.Coerce(r.Phase(r.SelectedPhase).Cost)
}

// DirectCost sums the selected phase cost, the scalar costs and all add-on
// lines, treating absent fields as zero. The two unselected phases never
// contribute.
func (r *Replacement) DirectCost() types.Money {
	direct := r.SelectedPhaseCost().Add(types.Sum(
		r.Labor,
		r.RefrigerationRecovery,
		r.StartUpCosts,
		r.ThermostatStartup,
		r.RemovalCost,
		r.PermitCost,
	))
	for _, a := range r.Accessories {
		direct = direct.Add(types.Coerce(a.Cost))
	}
	for _, a := range r.AdditionalItems {
		direct = direct.Add(types.Coerce(a.Cost))
	}
	return direct
}

// Recalculate rewrites TotalCost from the direct costs.
// A non-positive direct cost yields a zero total rather than a
// zero-divided artifact.
func (r *Replacement) Recalculate() {
	direct := r.DirectCost()
	if direct.Sign() <= 0 {
		r.TotalCost = types.Zero()
		return
	}
	r.TotalCost = types.RoundWhole(direct.Div(marginDivisor))
}

// Validate implements entity.Validatable.
func (r *Replacement) Validate(ctx context.Context) error {
	if id.IsNil(r.JobID) {
		return apperror.NewValidation("job is required").
			WithDetail("field", "jobId")
	}

	switch r.SelectedPhase {
	case PhaseEconomy, PhaseStandard, PhasePremium:
	default:
		return apperror.NewValidation("unknown phase selection").
			WithDetail("field", "selectedPhase").
			WithDetail("value", string(r.SelectedPhase))
	}

	for field, cost := range map[string]*types.Money{
		"phase1":                r.Phase1.Cost,
		"phase2":                r.Phase2.Cost,
		"phase3":                r.Phase3.Cost,
		"labor":                 r.Labor,
		"refrigerationRecovery": r.RefrigerationRecovery,
		"startUpCosts":          r.StartUpCosts,
		"thermostatStartup":     r.ThermostatStartup,
		"removalCost":           r.RemovalCost,
		"permitCost":            r.PermitCost,
	} {
		if cost != nil && cost.Sign() < 0 {
			return apperror.NewValidation("cost must not be negative").
				WithDetail("field", field)
		}
	}

	for _, group := range [][]CostedItem{r.Accessories, r.AdditionalItems} {
		for _, item := range group {
			if item.Cost != nil && item.Cost.Sign() < 0 {
				return apperror.NewValidation("cost must not be negative").
					WithDetail("field", "addons").
					WithDetail("name", item.Name)
			}
		}
	}

	return nil
}
