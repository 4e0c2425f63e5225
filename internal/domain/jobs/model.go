// Package jobs provides the Job aggregate: a scheduled field-service visit
// with its line items.
package jobs

import (
	"context"
	"time"

	"fieldserve/internal/core/apperror"
	"fieldserve/internal/core/entity"
	"fieldserve/internal/core/id"
	"fieldserve/internal/core/types"
)

// JobType classifies the kind of work a job represents.
type JobType string

const (
	TypeInspection  JobType = "inspection"
	TypeReplacement JobType = "replacement"
	TypeRepair      JobType = "repair"
	TypeMaintenance JobType = "maintenance"
)

// ValidTypes lists all accepted job types.
func ValidTypes() []JobType {
	return []JobType{TypeInspection, TypeReplacement, TypeRepair, TypeMaintenance}
}

// Status values for a job's lifecycle.
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Job represents a field-service visit for a customer.
type Job struct {
	entity.BaseRecord

	// JobNumber is the human-readable identifier (e.g., JOB-2026-00042)
	JobNumber string `db:"job_number" json:"jobNumber"`

	CustomerName  string  `db:"customer_name" json:"customerName"`
	CustomerEmail *string `db:"customer_email" json:"customerEmail,omitempty"`
	CustomerPhone *string `db:"customer_phone" json:"customerPhone,omitempty"`
	Address       string  `db:"address" json:"address"`

	JobType     JobType `db:"job_type" json:"jobType"`
	Status      Status  `db:"status" json:"status"`
	Description string  `db:"description" json:"description,omitempty"`

	ScheduledAt *time.Time `db:"scheduled_at" json:"scheduledAt,omitempty"`

	// Quote dispatch state, written when a quote is sent for this job
	QuoteToken   *string    `db:"quote_token" json:"quoteToken,omitempty"`
	QuoteSent    bool       `db:"quote_sent" json:"quoteSent"`
	QuoteSentAt  *time.Time `db:"quote_sent_at" json:"quoteSentAt,omitempty"`
	ContactEmail *string    `db:"contact_email" json:"contactEmail,omitempty"`

	// Quote confirmation state, written when the customer accepts
	QuoteConfirmed   bool       `db:"quote_confirmed" json:"quoteConfirmed"`
	QuoteConfirmedAt *time.Time `db:"quote_confirmed_at" json:"quoteConfirmedAt,omitempty"`

	// Table part: billable items attached to the job
	Items []JobItem `db:"-" json:"items"`
}

// ItemType classifies a job item line.
type ItemType string

const (
	ItemPart  ItemType = "part"
	ItemLabor ItemType = "labor"
	ItemFee   ItemType = "fee"
)

// JobItem represents a single billable line on a job.
type JobItem struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ItemType    ItemType `db:"item_type" json:"itemType"`
	Name        string   `db:"name" json:"name"`
	Description string   `db:"description" json:"description,omitempty"`

	Quantity float64 `db:"quantity" json:"quantity"`

	// UnitCost and TotalCost are nullable: older rows may carry only one
	// of the two, and cost fallbacks treat absent as zero.
	UnitCost  *types.Money `db:"unit_cost" json:"unitCost,omitempty"`
	TotalCost *types.Money `db:"total_cost" json:"totalCost,omitempty"`
}

// EffectiveCost returns the amount this item contributes to a quote:
// total cost when present and non-zero, otherwise unit cost, otherwise zero.
func (i JobItem) EffectiveCost() types.Money {
	return types.FirstNonZero(i.TotalCost, i.UnitCost)
}

// NewJob creates a new job with generated ID.
func NewJob(customerName, address string, jobType JobType) *Job {
	return &Job{
		BaseRecord:   entity.NewBaseRecord(),
		CustomerName: customerName,
		Address:      address,
		JobType:      jobType,
		Status:       StatusScheduled,
		Items:        make([]JobItem, 0),
	}
}

// AddItem appends a line item and recomputes its total.
func (j *Job) AddItem(itemType ItemType, name string, quantity float64, unitCost types.Money) {
	item := JobItem{
		LineID:   id.New(),
		LineNo:   len(j.Items) + 1,
		ItemType: itemType,
		Name:     name,
		Quantity: quantity,
		UnitCost: types.Ptr(unitCost),
	}
	item.Recalculate()
	j.Items = append(j.Items, item)
}

// Recalculate rewrites TotalCost as quantity times unit cost.
// Stored totals are never trusted from input.
func (i *JobItem) Recalculate() {
	unit := types.Coerce(i.UnitCost)
	total := unit.Mul(types.NewMoney(i.Quantity))
	i.TotalCost = types.Ptr(total)
}

// RecalculateItems renumbers lines and recomputes all item totals.
func (j *Job) RecalculateItems() {
	for idx := range j.Items {
		j.Items[idx].LineNo = idx + 1
		j.Items[idx].Recalculate()
	}
}

// Validate implements entity.Validatable.
func (j *Job) Validate(ctx context.Context) error {
	if j.CustomerName == "" {
		return apperror.NewValidation("customer name is required").
			WithDetail("field", "customerName")
	}

	valid := false
	for _, t := range ValidTypes() {
		if j.JobType == t {
			valid = true
			break
		}
	}
	if !valid {
		return apperror.NewValidation("unknown job type").
			WithDetail("field", "jobType").
			WithDetail("value", string(j.JobType))
	}

	for i, item := range j.Items {
		if item.Name == "" {
			return apperror.NewValidation("item name is required").
				WithDetail("field", "items").
				WithDetail("lineNo", i+1)
		}
		if item.Quantity < 0 {
			return apperror.NewValidation("item quantity must not be negative").
				WithDetail("field", "items").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}
