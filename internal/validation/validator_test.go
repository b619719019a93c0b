package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/property-backoffice/internal/model"
)

func validProperty() *model.Property {
	return &model.Property{
		Name:       "Oakview",
		Size:       "1000 sqft",
		Type:       model.PropertyHouse,
		RentAmount: 500,
	}
}

func fieldRules(t *testing.T, err error) map[string]string {
	t.Helper()
	var ve *Error
	require.True(t, errors.As(err, &ve), "expected *validation.Error, got %v", err)
	out := map[string]string{}
	for _, f := range ve.Fields {
		out[f.Field] = f.Rule
	}
	return out
}

func TestValidSize(t *testing.T) {
	ok := []string{"1000 sqft", "1000sqft", "5 acres", "12sqm", "1 sqm", "007 sqft", "18446744073709551616 sqft"}
	for _, s := range ok {
		assert.True(t, ValidSize(s), s)
	}
	bad := []string{"", "0 sqft", "000 sqm", "-5 sqft", "10.5 sqft", "1000  sqft", "sqft", "1000 sqyd", "1000 SQFT", " 1000 sqft"}
	for _, s := range bad {
		assert.False(t, ValidSize(s), s)
	}
}

func TestValidateProperty(t *testing.T) {
	v := New()

	require.NoError(t, v.Validate(validProperty()))

	p := validProperty()
	p.Size = "0 sqft"
	assert.Equal(t, "propsize", fieldRules(t, v.Validate(p))["size"])

	p = validProperty()
	p.Name = "1Oak"
	assert.Equal(t, "startsletter", fieldRules(t, v.Validate(p))["name"])

	for _, name := range []string{"Élan Court", "Ωmega", " Oakview"} {
		p = validProperty()
		p.Name = name
		assert.Equal(t, "startsletter", fieldRules(t, v.Validate(p))["name"], name)
	}

	p = validProperty()
	p.Name = "oakview"
	require.NoError(t, v.Validate(p))

	p = validProperty()
	p.Name = "Oa"
	assert.Equal(t, "min", fieldRules(t, v.Validate(p))["name"])

	p = validProperty()
	p.Type = "Castle"
	assert.Equal(t, "oneof", fieldRules(t, v.Validate(p))["type"])

	p = validProperty()
	p.RentAmount = -1
	assert.Equal(t, "gte", fieldRules(t, v.Validate(p))["rentAmount"])

	p = validProperty()
	p.Location = "abc"
	assert.Equal(t, "min", fieldRules(t, v.Validate(p))["location"])

	p = validProperty()
	p.ImageURL = "https://res.cloudinary.com/demo/image/upload/properties/oak.jpg"
	assert.NoError(t, v.Validate(p))
}

func TestValidateContractorSkills(t *testing.T) {
	v := New()
	c := model.NewContractor()
	c.Name = "Bob Builder"
	c.Email = "BOB@example.com"
	c.Phone = "0123456789"
	c.Skills = []string{"  plumbing ", "electrical"}
	c.Normalize()

	require.NoError(t, v.Validate(c))
	assert.Equal(t, []string{"plumbing", "electrical"}, c.Skills)
	assert.Equal(t, "bob@example.com", c.Email)

	c.Skills = []string{"plumbing", "   "}
	c.Normalize()
	assert.Equal(t, "required", fieldRules(t, v.Validate(c))["skills[1]"])

	c.Skills = []string{"3d printing"}
	assert.Equal(t, "nodigitprefix", fieldRules(t, v.Validate(c))["skills[0]"])

	c.Skills = nil
	c.Phone = "12345"
	assert.Equal(t, "phone10", fieldRules(t, v.Validate(c))["phone"])

	c.Phone = "0123456789"
	c.Name = "9Bob"
	assert.Equal(t, "nodigitprefix", fieldRules(t, v.Validate(c))["name"])
}

func TestValidateTenant(t *testing.T) {
	v := New()
	tn := model.NewTenant()
	tn.Name = "Jane"
	tn.Phone = "+15551234567"
	tn.Email = "jane@example.com"
	tn.PropertyID = "p1"
	require.NoError(t, v.Validate(tn))

	tn.Phone = "call me"
	tn.Email = "nope"
	rules := fieldRules(t, v.Validate(tn))
	assert.Equal(t, "phone", rules["phoneNumber"])
	assert.Equal(t, "email", rules["email"])
}

func TestValidateMaintenanceStatus(t *testing.T) {
	v := New()
	m := &model.MaintenanceRequest{
		TenantID:    "t1",
		PropertyID:  "p1",
		Description: "Leaking tap",
		Status:      model.MaintenanceInProgress,
		Priority:    model.PriorityHigh,
	}
	require.NoError(t, v.Validate(m))

	m.Status = "Done"
	assert.Equal(t, "oneof", fieldRules(t, v.Validate(m))["status"])
}

func TestErrorMessage(t *testing.T) {
	err := New().Validate(&model.Property{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "size is required")
}
