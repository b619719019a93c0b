package model

import (
	"strings"
	"time"
)

// PropertyType enumerates the kinds of property the back office manages.
type PropertyType string

const (
	PropertyHouse      PropertyType = "House"
	PropertyApartment  PropertyType = "Apartment"
	PropertyCommercial PropertyType = "Commercial"
)

// Property represents a rentable unit as stored in the `properties`
// table / collection.  Tenants and maintenance requests reference a
// property by ID only; deleting a property does not touch them.
//
// Fields:
//
//	ID          – generated UUID.
//	Name        – display name, must start with a letter.
//	Description – free text (optional).
//	Location    – address or area (optional).
//	Size        – magnitude and unit, e.g. "1000 sqft".
//	ImageURL    – URL of the hosted image (optional).
//	Type        – House, Apartment or Commercial.
//	RentAmount  – monthly rent, never negative.
//	IsRented    – whether a tenant currently occupies the property.
type Property struct {
	ID          string       `json:"id" bson:"_id"`
	Name        string       `json:"name" bson:"name" validate:"required,min=3,max=20,startsletter"`
	Description string       `json:"description,omitempty" bson:"description,omitempty" validate:"max=200"`
	Location    string       `json:"location,omitempty" bson:"location,omitempty" validate:"omitempty,min=5,max=200"`
	Size        string       `json:"size" bson:"size" validate:"required,propsize"`
	ImageURL    string       `json:"imageUrl,omitempty" bson:"imageUrl,omitempty" validate:"omitempty,imageurl"`
	Type        PropertyType `json:"type" bson:"type" validate:"required,oneof=House Apartment Commercial"`
	RentAmount  float64      `json:"rentAmount" bson:"rentAmount" validate:"gte=0"`
	IsRented    bool         `json:"isRented" bson:"isRented"`
	CreatedAt   time.Time    `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt" bson:"updatedAt"`
}

// Normalize trims the free-text fields in place.
func (p *Property) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	p.Location = strings.TrimSpace(p.Location)
	p.Size = strings.TrimSpace(p.Size)
	p.ImageURL = strings.TrimSpace(p.ImageURL)
	p.Type = PropertyType(strings.TrimSpace(string(p.Type)))
}

// PropertyPatch carries the fields of a create or update request.  Nil
// fields are left untouched when applied.
type PropertyPatch struct {
	Name        *string       `json:"name"`
	Description *string       `json:"description"`
	Location    *string       `json:"location"`
	Size        *string       `json:"size"`
	ImageURL    *string       `json:"imageUrl"`
	Type        *PropertyType `json:"type"`
	RentAmount  *float64      `json:"rentAmount"`
	IsRented    *bool         `json:"isRented"`
}

// Apply merges the non-nil patch fields into p.
func (pp PropertyPatch) Apply(p *Property) {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.Location != nil {
		p.Location = *pp.Location
	}
	if pp.Size != nil {
		p.Size = *pp.Size
	}
	if pp.ImageURL != nil {
		p.ImageURL = *pp.ImageURL
	}
	if pp.Type != nil {
		p.Type = *pp.Type
	}
	if pp.RentAmount != nil {
		p.RentAmount = *pp.RentAmount
	}
	if pp.IsRented != nil {
		p.IsRented = *pp.IsRented
	}
}
