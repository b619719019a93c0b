package model

import (
	"strings"
	"time"
)

// Contractor is an external tradesperson who can be assigned to
// maintenance requests.  Skills are stored trimmed.
type Contractor struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name" validate:"required,min=3,max=100,nodigitprefix"`
	Email     string    `json:"email" bson:"email" validate:"required,email"`
	Phone     string    `json:"phone" bson:"phone" validate:"required,phone10"`
	Skills    []string  `json:"skills" bson:"skills" validate:"dive,required,nodigitprefix"`
	Available bool      `json:"available" bson:"available"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// NewContractor returns a contractor that is available by default.
func NewContractor() *Contractor {
	return &Contractor{Available: true, Skills: []string{}}
}

// Normalize trims the name, email and every skill.
func (c *Contractor) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.Phone = strings.TrimSpace(c.Phone)
	for i, s := range c.Skills {
		c.Skills[i] = strings.TrimSpace(s)
	}
	if c.Skills == nil {
		c.Skills = []string{}
	}
}

// ContractorPatch carries the fields of a create or update request.
type ContractorPatch struct {
	Name      *string   `json:"name"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	Skills    *[]string `json:"skills"`
	Available *bool     `json:"available"`
}

// Apply merges the non-nil patch fields into c.
func (cp ContractorPatch) Apply(c *Contractor) {
	if cp.Name != nil {
		c.Name = *cp.Name
	}
	if cp.Email != nil {
		c.Email = *cp.Email
	}
	if cp.Phone != nil {
		c.Phone = *cp.Phone
	}
	if cp.Skills != nil {
		c.Skills = append([]string(nil), (*cp.Skills)...)
	}
	if cp.Available != nil {
		c.Available = *cp.Available
	}
}
