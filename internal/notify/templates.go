package notify

import (
	"fmt"

	"github.com/iliyamo/property-backoffice/internal/model"
)

// AssignmentSubject is the email subject sent to a newly assigned contractor.
const AssignmentSubject = "New Maintenance Request Assigned"

// ContractorAssigned returns the SMS and email telling c about request r.
func ContractorAssigned(c *model.Contractor, r *model.MaintenanceRequest) []Message {
	sms := fmt.Sprintf("You have been assigned maintenance request %s (%s priority): %s",
		r.ID, r.Priority, r.Description)
	email := fmt.Sprintf("Hello %s,\n\nYou have been assigned a new maintenance request.\n\n"+
		"Request: %s\nProperty: %s\nPriority: %s\nDescription: %s\n",
		c.Name, r.ID, r.PropertyID, r.Priority, r.Description)
	return []Message{
		{Channel: ChannelSMS, To: c.Phone, Body: sms, Reference: r.ID},
		{Channel: ChannelEmail, To: c.Email, Subject: AssignmentSubject, Body: email, Reference: r.ID},
	}
}

// LeaseDeclined returns the SMS sent to t when their lease is declined.
func LeaseDeclined(t *model.Tenant) Message {
	return Message{
		Channel:   ChannelSMS,
		To:        t.Phone,
		Body:      fmt.Sprintf("Dear %s, your lease has been declined. Please contact property management for further details.", t.Name),
		Reference: t.ID,
	}
}
