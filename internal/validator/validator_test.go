package validator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type onboardReq struct {
	FullName string `json:"full_name" validate:"max=255"`
	Username string `json:"username" validate:"required,min=2,max=50,username"`
	RoleType string `json:"role_type" validate:"omitempty,is-role-type"`
}

type roleReq struct {
	RoleName string          `json:"role_name" validate:"required"`
	Specs    json.RawMessage `json:"specs" validate:"json-object"`
}

type projectReq struct {
	Title     string  `json:"title" validate:"required"`
	DateStart string  `json:"date_start" validate:"is-date"`
	Role      roleReq `json:"role"`
}

func TestValidate_UsesJSONNames(t *testing.T) {
	v := New()

	err := v.Validate(&onboardReq{Username: "", RoleType: "director"})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "This field is required", vErr.Errors["username"])
	assert.Contains(t, vErr.Errors["role_type"], "talent")
}

func TestValidate_CustomRules(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&onboardReq{Username: "jdoe", RoleType: "talent"}))
	assert.NoError(t, v.Validate(&onboardReq{Username: "j.doe_99"}))
	assert.Error(t, v.Validate(&onboardReq{Username: "j doe"}))

	err := v.Validate(&projectReq{
		Title:     "Film",
		DateStart: "12/01/2025",
		Role:      roleReq{RoleName: "Lead", Specs: json.RawMessage(`[1,2]`)},
	})
	require.Error(t, err)
	vErr := err.(*ValidationError)
	assert.Contains(t, vErr.Errors, "date_start")
	assert.Contains(t, vErr.Errors, "role.specs")

	assert.NoError(t, v.Validate(&projectReq{
		Title:     "Film",
		DateStart: "2025-12-01",
		Role:      roleReq{RoleName: "Lead", Specs: json.RawMessage(`{"age":"20-30"}`)},
	}))
}
