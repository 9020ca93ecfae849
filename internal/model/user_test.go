package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleDisplay(t *testing.T) {
	assert.Equal(t, "Operator", RoleOperator.Display())
	assert.Equal(t, "Analyst", RoleAnalyst.Display())
	assert.Equal(t, "Admin", RoleAdmin.Display())
	assert.Equal(t, "ghost", Role("ghost").Display())
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleOperator.Valid())
	assert.True(t, RoleAnalyst.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("superuser").Valid())
	assert.False(t, Role("").Valid())
}

func TestPasswordHashNeverSerialized(t *testing.T) {
	user := User{ID: 1, Username: "alice", PasswordHash: "bcrypt-hash", Role: RoleOperator}

	raw, err := json.Marshal(user)
	assert.NoError(t, err)
	assert.NotContains(t, string(raw), "bcrypt-hash")

	raw, err = json.Marshal(user.Summary())
	assert.NoError(t, err)
	assert.NotContains(t, string(raw), "bcrypt-hash")

	raw, err = json.Marshal(user.Detail())
	assert.NoError(t, err)
	assert.NotContains(t, string(raw), "bcrypt-hash")
}

func TestDetailIncludesRoleDisplay(t *testing.T) {
	user := User{ID: 1, Username: "alice", Role: RoleOperator}
	detail := user.Detail()
	assert.Equal(t, "Operator", detail.RoleDisplay)

	raw, err := json.Marshal(detail)
	assert.NoError(t, err)
	assert.Contains(t, string(raw), `"role_display":"Operator"`)
}

func TestDetailOmitsStaffFlag(t *testing.T) {
	user := User{ID: 1, Username: "alice", Role: RoleAnalyst, IsStaff: true}

	raw, err := json.Marshal(user.Detail())
	assert.NoError(t, err)
	assert.NotContains(t, string(raw), "is_staff")
}
