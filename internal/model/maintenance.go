package model

import (
	"strings"
	"time"
)

// MaintenanceStatus is the progress state of a maintenance request.
type MaintenanceStatus string

const (
	MaintenancePending    MaintenanceStatus = "Pending"
	MaintenanceInProgress MaintenanceStatus = "In Progress"
	MaintenanceCompleted  MaintenanceStatus = "Completed"
)

// Priority ranks maintenance requests.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// MaintenanceRequest records a repair job raised for a property.
//
// Fields:
//
//	ID             – generated UUID.
//	TenantID       – weak reference to the tenant who raised it.
//	PropertyID     – weak reference to the affected property.
//	Description    – what needs fixing.
//	RequestDate    – when the request was raised; defaults to creation time.
//	Status         – Pending, In Progress or Completed.
//	Priority       – Low, Medium or High.
//	ContractorID   – assigned contractor (empty until assigned).
//	AssignmentDate – when the contractor was assigned (nil until assigned).
//
// ContractorID and AssignmentDate are only written by Assign.
type MaintenanceRequest struct {
	ID             string            `json:"id" bson:"_id"`
	TenantID       string            `json:"tenantId" bson:"tenantId" validate:"required"`
	PropertyID     string            `json:"propertyId" bson:"propertyId" validate:"required"`
	Description    string            `json:"description" bson:"description" validate:"required,max=1000"`
	RequestDate    time.Time         `json:"requestDate" bson:"requestDate"`
	Status         MaintenanceStatus `json:"status" bson:"status" validate:"required,oneof='Pending' 'In Progress' 'Completed'"`
	Priority       Priority          `json:"priority" bson:"priority" validate:"required,oneof=Low Medium High"`
	ContractorID   string            `json:"contractorId,omitempty" bson:"contractorId,omitempty"`
	AssignmentDate *time.Time        `json:"assignmentDate,omitempty" bson:"assignmentDate,omitempty"`
	CreatedAt      time.Time         `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt" bson:"updatedAt"`
}

// NewMaintenanceRequest returns a pending, medium-priority request dated now.
func NewMaintenanceRequest(now time.Time) *MaintenanceRequest {
	return &MaintenanceRequest{
		RequestDate: now,
		Status:      MaintenancePending,
		Priority:    PriorityMedium,
	}
}

// Normalize trims the reference IDs and description.
func (m *MaintenanceRequest) Normalize() {
	m.TenantID = strings.TrimSpace(m.TenantID)
	m.PropertyID = strings.TrimSpace(m.PropertyID)
	m.Description = strings.TrimSpace(m.Description)
}

// Assign links the contractor, stamps the assignment date and moves the
// request into progress in one step.
func (m *MaintenanceRequest) Assign(contractorID string, at time.Time) {
	m.ContractorID = contractorID
	m.AssignmentDate = &at
	m.Status = MaintenanceInProgress
}

// MaintenancePatch carries the fields a create or generic update may set.
// Contractor assignment is deliberately absent.
type MaintenancePatch struct {
	TenantID    *string            `json:"tenantId"`
	PropertyID  *string            `json:"propertyId"`
	Description *string            `json:"description"`
	RequestDate *time.Time         `json:"requestDate"`
	Status      *MaintenanceStatus `json:"status"`
	Priority    *Priority          `json:"priority"`
}

// Apply merges the non-nil patch fields into m.
func (mp MaintenancePatch) Apply(m *MaintenanceRequest) {
	if mp.TenantID != nil {
		m.TenantID = *mp.TenantID
	}
	if mp.PropertyID != nil {
		m.PropertyID = *mp.PropertyID
	}
	if mp.Description != nil {
		m.Description = *mp.Description
	}
	if mp.RequestDate != nil {
		m.RequestDate = *mp.RequestDate
	}
	if mp.Status != nil {
		m.Status = *mp.Status
	}
	if mp.Priority != nil {
		m.Priority = *mp.Priority
	}
}
