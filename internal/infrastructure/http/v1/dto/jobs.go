package dto

import (
	"time"

	"fieldserve/internal/core/id"
	"fieldserve/internal/core/types"
	"fieldserve/internal/domain/jobs"
)

// JobItemRequest is one line item on a job.
type JobItemRequest struct {
	ItemType    string       `json:"itemType" binding:"required,oneof=part labor fee"`
	Name        string       `json:"name" binding:"required"`
	Description string       `json:"description"`
	Quantity    float64      `json:"quantity" binding:"min=0"`
	UnitCost    *types.Money `json:"unitCost"`
	TotalCost   *types.Money `json:"totalCost"`
}

// ToItem converts the request line to a domain item.
func (r JobItemRequest) ToItem() jobs.JobItem {
	return jobs.JobItem{
		LineID:      id.New(),
		ItemType:    jobs.ItemType(r.ItemType),
		Name:        r.Name,
		Description: r.Description,
		Quantity:    r.Quantity,
		UnitCost:    r.UnitCost,
		TotalCost:   r.TotalCost,
	}
}

// CreateJobRequest for creating jobs.
type CreateJobRequest struct {
	CustomerName  string           `json:"customerName" binding:"required"`
	CustomerEmail *string          `json:"customerEmail"`
	CustomerPhone *string          `json:"customerPhone"`
	Address       string           `json:"address"`
	JobType       string           `json:"jobType" binding:"required"`
	Description   string           `json:"description"`
	ScheduledAt   *time.Time       `json:"scheduledAt"`
	Items         []JobItemRequest `json:"items"`
}

// ToEntity converts the request to a new Job.
func (r CreateJobRequest) ToEntity() *jobs.Job {
	job := jobs.NewJob(r.CustomerName, r.Address, jobs.JobType(r.JobType))
	job.CustomerEmail = r.CustomerEmail
	job.CustomerPhone = r.CustomerPhone
	job.Description = r.Description
	job.ScheduledAt = r.ScheduledAt

	for _, item := range r.Items {
		job.Items = append(job.Items, item.ToItem())
	}
	job.RecalculateItems()

	return job
}

// UpdateJobRequest for updating jobs. Nil fields are left unchanged.
type UpdateJobRequest struct {
	CustomerName  *string    `json:"customerName"`
	CustomerEmail *string    `json:"customerEmail"`
	CustomerPhone *string    `json:"customerPhone"`
	Address       *string    `json:"address"`
	JobType       *string    `json:"jobType"`
	Status        *string    `json:"status"`
	Description   *string    `json:"description"`
	ScheduledAt   *time.Time `json:"scheduledAt"`
	Version       int        `json:"version" binding:"required,min=1"`
}

// ApplyTo applies non-nil fields to the existing job.
func (r UpdateJobRequest) ApplyTo(job *jobs.Job) {
	if r.CustomerName != nil {
		job.CustomerName = *r.CustomerName
	}
	if r.CustomerEmail != nil {
		job.CustomerEmail = r.CustomerEmail
	}
	if r.CustomerPhone != nil {
		job.CustomerPhone = r.CustomerPhone
	}
	if r.Address != nil {
		job.Address = *r.Address
	}
	if r.JobType != nil {
		job.JobType = jobs.JobType(*r.JobType)
	}
	if r.Status != nil {
		job.Status = jobs.Status(*r.Status)
	}
	if r.Description != nil {
		job.Description = *r.Description
	}
	if r.ScheduledAt != nil {
		job.ScheduledAt = r.ScheduledAt
	}
	job.SetVersion(r.Version)
}

// SaveJobItemsRequest replaces a job's line items.
type SaveJobItemsRequest struct {
	Items []JobItemRequest `json:"items" binding:"required"`
}

// ToItems converts the request lines to domain items.
func (r SaveJobItemsRequest) ToItems() []jobs.JobItem {
	items := make([]jobs.JobItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, item.ToItem())
	}
	return items
}
