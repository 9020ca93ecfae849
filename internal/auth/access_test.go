package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vesseltrack/internal/model"
)

func TestCanAccess(t *testing.T) {
	self := &Principal{ID: 1, Username: "alice", Role: model.RoleOperator}
	staffAnalyst := &Principal{ID: 2, Username: "bob", Role: model.RoleAnalyst, IsStaff: true}
	nonStaffAdmin := &Principal{ID: 3, Username: "carol", Role: model.RoleAdmin, IsStaff: false}

	tests := []struct {
		name      string
		principal *Principal
		op        Operation
		targetID  uint
		want      bool
	}{
		{"unauthenticated denied list", nil, OpListUsers, 0, false},
		{"unauthenticated denied detail", nil, OpViewUserDetail, 1, false},
		{"unauthenticated denied stats", nil, OpViewStats, 0, false},
		{"unauthenticated denied update", nil, OpUpdateUserDetail, 1, false},
		{"unauthenticated denied own profile", nil, OpUpdateOwnProfile, 0, false},

		// Staff flag, not role, gates listing and stats: the staff analyst
		// is allowed where the non-staff admin is not.
		{"non-staff denied list", self, OpListUsers, 0, false},
		{"non-staff admin denied list", nonStaffAdmin, OpListUsers, 0, false},
		{"staff analyst allowed list", staffAnalyst, OpListUsers, 0, true},
		{"non-staff denied stats", self, OpViewStats, 0, false},
		{"non-staff admin denied stats", nonStaffAdmin, OpViewStats, 0, false},
		{"staff analyst allowed stats", staffAnalyst, OpViewStats, 0, true},

		// Any authenticated user may view any detail.
		{"view own detail", self, OpViewUserDetail, 1, true},
		{"view other detail", self, OpViewUserDetail, 3, true},

		// Update detail: self or staff.
		{"update own detail", self, OpUpdateUserDetail, 1, true},
		{"update other detail denied", self, OpUpdateUserDetail, 3, false},
		{"staff updates any detail", staffAnalyst, OpUpdateUserDetail, 1, true},
		{"non-staff admin updates other denied", nonStaffAdmin, OpUpdateUserDetail, 1, false},
		{"non-staff admin updates self", nonStaffAdmin, OpUpdateUserDetail, 3, true},

		// Own profile is always available to the authenticated requester.
		{"own profile allowed", self, OpUpdateOwnProfile, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAccess(tt.principal, tt.op, tt.targetID))
		})
	}
}

func TestCanAccess_Pure(t *testing.T) {
	p := &Principal{ID: 7, Username: "dave", Role: model.RoleOperator, IsStaff: true}
	first := CanAccess(p, OpListUsers, 0)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, CanAccess(p, OpListUsers, 0))
	}
}

func TestPrincipalFromUser(t *testing.T) {
	user := &model.User{ID: 9, Username: "erin", Role: model.RoleAnalyst, IsStaff: true}
	p := PrincipalFromUser(user)
	assert.Equal(t, uint(9), p.ID)
	assert.Equal(t, "erin", p.Username)
	assert.Equal(t, model.RoleAnalyst, p.Role)
	assert.True(t, p.IsStaff)
}
