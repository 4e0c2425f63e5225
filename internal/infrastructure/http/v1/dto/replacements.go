package dto

import (
	"fieldserve/internal/core/id"
	"fieldserve/internal/core/types"
	"fieldserve/internal/domain/replacements"
)

// PhaseOptionRequest carries one priced tier of a replacement estimate.
type PhaseOptionRequest struct {
	Description string       `json:"description"`
	Cost        *types.Money `json:"cost"`
}

func (r PhaseOptionRequest) toOption(current replacements.PhaseOption) replacements.PhaseOption {
	opt := current
	if r.Description != "" {
		opt.Description = r.Description
	}
	if r.Cost != nil {
		opt.Cost = r.Cost
	}
	return opt
}

// CostedItemRequest carries one add-on line (accessory or additional item).
type CostedItemRequest struct {
	Name string       `json:"name" binding:"required"`
	Cost *types.Money `json:"cost"`
}

func costedItemsFromRequests(in []CostedItemRequest) []replacements.CostedItem {
	out := make([]replacements.CostedItem, 0, len(in))
	for _, item := range in {
		out = append(out, replacements.CostedItem{Name: item.Name, Cost: item.Cost})
	}
	return out
}

// CreateReplacementRequest for recording a replacement estimate.
// Totals are recomputed server-side and never accepted from input.
type CreateReplacementRequest struct {
	JobID        id.ID  `json:"jobId" binding:"required"`
	InspectionID *id.ID `json:"inspectionId"`

	Phase1        *PhaseOptionRequest `json:"phase1"`
	Phase2        *PhaseOptionRequest `json:"phase2"`
	Phase3        *PhaseOptionRequest `json:"phase3"`
	SelectedPhase string              `json:"selectedPhase"`

	Labor                 *types.Money `json:"labor"`
	RefrigerationRecovery *types.Money `json:"refrigerationRecovery"`
	StartUpCosts          *types.Money `json:"startUpCosts"`
	ThermostatStartup     *types.Money `json:"thermostatStartup"`
	RemovalCost           *types.Money `json:"removalCost"`
	PermitCost            *types.Money `json:"permitCost"`

	Accessories     []CostedItemRequest `json:"accessories"`
	AdditionalItems []CostedItemRequest `json:"additionalItems"`

	NeedsCrane        bool `json:"needsCrane"`
	RequiresPermit    bool `json:"requiresPermit"`
	RequiresBigLadder bool `json:"requiresBigLadder"`

	Warranty string `json:"warranty"`
}

// ToEntity converts the request to a new Replacement.
func (r CreateReplacementRequest) ToEntity() *replacements.Replacement {
	repl := replacements.NewReplacement(r.JobID)
	repl.InspectionID = r.InspectionID
	if r.Phase1 != nil {
		repl.Phase1 = r.Phase1.toOption(repl.Phase1)
	}
	if r.Phase2 != nil {
		repl.Phase2 = r.Phase2.toOption(repl.Phase2)
	}
	if r.Phase3 != nil {
		repl.Phase3 = r.Phase3.toOption(repl.Phase3)
	}
	if r.SelectedPhase != "" {
		repl.SelectedPhase = replacements.PhaseKey(r.SelectedPhase)
	}
	repl.Labor = r.Labor
	repl.RefrigerationRecovery = r.RefrigerationRecovery
	repl.StartUpCosts = r.StartUpCosts
	repl.ThermostatStartup = r.ThermostatStartup
	repl.RemovalCost = r.RemovalCost
	repl.PermitCost = r.PermitCost
	if r.Accessories != nil {
		repl.Accessories = costedItemsFromRequests(r.Accessories)
	}
	if r.AdditionalItems != nil {
		repl.AdditionalItems = costedItemsFromRequests(r.AdditionalItems)
	}
	repl.NeedsCrane = r.NeedsCrane
	repl.RequiresPermit = r.RequiresPermit
	repl.RequiresBigLadder = r.RequiresBigLadder
	repl.Warranty = r.Warranty
	return repl
}

// UpdateReplacementRequest for updating replacement estimates. Nil fields
// are left unchanged; clearing a cost means sending zero.
type UpdateReplacementRequest struct {
	Phase1        *PhaseOptionRequest `json:"phase1"`
	Phase2        *PhaseOptionRequest `json:"phase2"`
	Phase3        *PhaseOptionRequest `json:"phase3"`
	SelectedPhase *string             `json:"selectedPhase"`

	Labor                 *types.Money `json:"labor"`
	RefrigerationRecovery *types.Money `json:"refrigerationRecovery"`
	StartUpCosts          *types.Money `json:"startUpCosts"`
	ThermostatStartup     *types.Money `json:"thermostatStartup"`
	RemovalCost           *types.Money `json:"removalCost"`
	PermitCost            *types.Money `json:"permitCost"`

	Accessories     []CostedItemRequest `json:"accessories"`
	AdditionalItems []CostedItemRequest `json:"additionalItems"`

	NeedsCrane        *bool `json:"needsCrane"`
	RequiresPermit    *bool `json:"requiresPermit"`
	RequiresBigLadder *bool `json:"requiresBigLadder"`

	Warranty *string `json:"warranty"`
	Version  int     `json:"version" binding:"required,min=1"`
}

// ApplyTo applies non-nil fields to the existing replacement.
func (r UpdateReplacementRequest) ApplyTo(repl *replacements.Replacement) {
	if r.Phase1 != nil {
		repl.Phase1 = r.Phase1.toOption(repl.Phase1)
	}
	if r.Phase2 != nil {
		repl.Phase2 = r.Phase2.toOption(repl.Phase2)
	}
	if r.Phase3 != nil {
		repl.Phase3 = r.Phase3.toOption(repl.Phase3)
	}
	if r.SelectedPhase != nil {
		repl.SelectedPhase = replacements.PhaseKey(*r.SelectedPhase)
	}
	if r.Labor != nil {
		repl.Labor = r.Labor
	}
	if r.RefrigerationRecovery != nil {
		repl.RefrigerationRecovery = r.RefrigerationRecovery
	}
	if r.StartUpCosts != nil {
		repl.StartUpCosts = r.StartUpCosts
	}
	if r.ThermostatStartup != nil {
		repl.ThermostatStartup = r.ThermostatStartup
	}
	if r.RemovalCost != nil {
		repl.RemovalCost = r.RemovalCost
	}
	if r.PermitCost != nil {
		repl.PermitCost = r.PermitCost
	}
	if r.Accessories != nil {
		repl.Accessories = costedItemsFromRequests(r.Accessories)
	}
	if r.AdditionalItems != nil {
		repl.AdditionalItems = costedItemsFromRequests(r.AdditionalItems)
	}
	if r.NeedsCrane != nil {
		repl.NeedsCrane = *r.NeedsCrane
	}
	if r.RequiresPermit != nil {
		repl.RequiresPermit = *r.RequiresPermit
	}
	if r.RequiresBigLadder != nil {
		repl.RequiresBigLadder = *r.RequiresBigLadder
	}
	if r.Warranty != nil {
		repl.Warranty = *r.Warranty
	}
	repl.SetVersion(r.Version)
}
