package model

import (
	"strings"
	"time"
)

// LeaseStatus is the lifecycle state of a tenant's lease.
type LeaseStatus string

const (
	LeaseActive   LeaseStatus = "Active"
	LeaseDeclined LeaseStatus = "Declined"
	LeaseEnded    LeaseStatus = "Ended"
)

// Terminal reports whether the status closes the lease.
func (s LeaseStatus) Terminal() bool { return s == LeaseDeclined || s == LeaseEnded }

// PaymentStatus tracks whether the current rent has been paid.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "Paid"
	PaymentDue     PaymentStatus = "Due"
	PaymentOverdue PaymentStatus = "Overdue"
)

// Lease holds the contract dates and terms embedded in a tenant.
type Lease struct {
	StartDate *time.Time `json:"startDate,omitempty" bson:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty" bson:"endDate,omitempty"`
	Terms     string     `json:"terms,omitempty" bson:"terms,omitempty" validate:"max=2000"`
}

// Tenant represents a person renting a property.  The lease end date
// is stamped whenever the lease status moves to Declined or Ended.
//
// Fields:
//
//	ID            – generated UUID.
//	Name          – full name.
//	Phone         – SMS-capable phone number.
//	Email         – unique, lower-cased.
//	Address       – postal address (optional).
//	PropertyID    – weak reference to the rented property.
//	Lease         – contract dates and terms.
//	LeaseStatus   – Active, Declined or Ended.
//	PaymentStatus – Paid, Due or Overdue.
//	Declined      – set once the lease has been declined.
type Tenant struct {
	ID            string        `json:"id" bson:"_id"`
	Name          string        `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Phone         string        `json:"phoneNumber" bson:"phoneNumber" validate:"required,phone"`
	Email         string        `json:"email" bson:"email" validate:"required,email"`
	Address       string        `json:"address,omitempty" bson:"address,omitempty" validate:"max=200"`
	PropertyID    string        `json:"propertyId" bson:"propertyId" validate:"required"`
	Lease         Lease         `json:"lease" bson:"lease"`
	LeaseStatus   LeaseStatus   `json:"leaseStatus" bson:"leaseStatus" validate:"required,oneof=Active Declined Ended"`
	PaymentStatus PaymentStatus `json:"paymentStatus" bson:"paymentStatus" validate:"required,oneof=Paid Due Overdue"`
	Declined      bool          `json:"declined" bson:"declined"`
	CreatedAt     time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// NewTenant returns a tenant with the default lease and payment status.
func NewTenant() *Tenant {
	return &Tenant{LeaseStatus: LeaseActive, PaymentStatus: PaymentDue}
}

// Normalize trims text fields and lower-cases the email.
func (t *Tenant) Normalize() {
	t.Name = strings.TrimSpace(t.Name)
	t.Phone = strings.TrimSpace(t.Phone)
	t.Email = strings.ToLower(strings.TrimSpace(t.Email))
	t.Address = strings.TrimSpace(t.Address)
	t.PropertyID = strings.TrimSpace(t.PropertyID)
	t.Lease.Terms = strings.TrimSpace(t.Lease.Terms)
}

// CloseLease moves the lease into a terminal status and stamps the end
// date.  Declining also sets the declined flag.
func (t *Tenant) CloseLease(status LeaseStatus, at time.Time) {
	t.LeaseStatus = status
	t.Lease.EndDate = &at
	if status == LeaseDeclined {
		t.Declined = true
	}
}

// LeasePatch is the partial form of Lease.
type LeasePatch struct {
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	Terms     *string    `json:"terms"`
}

// TenantPatch carries the fields of a create or update request.
type TenantPatch struct {
	Name          *string        `json:"name"`
	Phone         *string        `json:"phoneNumber"`
	Email         *string        `json:"email"`
	Address       *string        `json:"address"`
	PropertyID    *string        `json:"propertyId"`
	Lease         *LeasePatch    `json:"lease"`
	LeaseStatus   *LeaseStatus   `json:"leaseStatus"`
	PaymentStatus *PaymentStatus `json:"paymentStatus"`
	Declined      *bool          `json:"declined"`
}

// Apply merges the patch into t.  A lease status change into Declined or
// Ended stamps the end date with now, matching the lifecycle operations.
func (tp TenantPatch) Apply(t *Tenant, now time.Time) {
	if tp.Name != nil {
		t.Name = *tp.Name
	}
	if tp.Phone != nil {
		t.Phone = *tp.Phone
	}
	if tp.Email != nil {
		t.Email = *tp.Email
	}
	if tp.Address != nil {
		t.Address = *tp.Address
	}
	if tp.PropertyID != nil {
		t.PropertyID = *tp.PropertyID
	}
	if tp.Lease != nil {
		if tp.Lease.StartDate != nil {
			t.Lease.StartDate = tp.Lease.StartDate
		}
		if tp.Lease.EndDate != nil {
			t.Lease.EndDate = tp.Lease.EndDate
		}
		if tp.Lease.Terms != nil {
			t.Lease.Terms = *tp.Lease.Terms
		}
	}
	if tp.PaymentStatus != nil {
		t.PaymentStatus = *tp.PaymentStatus
	}
	if tp.Declined != nil {
		t.Declined = *tp.Declined
	}
	if tp.LeaseStatus != nil && *tp.LeaseStatus != t.LeaseStatus {
		if tp.LeaseStatus.Terminal() {
			t.CloseLease(*tp.LeaseStatus, now)
		} else {
			t.LeaseStatus = *tp.LeaseStatus
		}
	}
}
