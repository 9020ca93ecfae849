package auth

import "vesseltrack/internal/model"

// Operation identifies a protected operation for access control purposes.
type Operation int

const (
	// OpListUsers lists every user in the system.
	OpListUsers Operation = iota
	// OpViewUserDetail reads a single user's full detail.
	OpViewUserDetail
	// OpUpdateUserDetail applies a partial update to a user record.
	OpUpdateUserDetail
	// OpViewStats reads aggregate per-role counts.
	OpViewStats
	// OpUpdateOwnProfile updates the requester's own fullname/email.
	OpUpdateOwnProfile
)

// Principal is the authenticated identity attached to a request after token
// validation. Role and IsStaff reflect the current store state, not the
// claims snapshot.
type Principal struct {
	ID       uint
	Username string
	Role     model.Role
	IsStaff  bool
}

// PrincipalFromUser builds a Principal from a stored user record.
func PrincipalFromUser(user *model.User) *Principal {
	return &Principal{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
		IsStaff:  user.IsStaff,
	}
}

// CanAccess decides whether the principal may perform op against the target
// user id. It is a pure function of its inputs. A nil principal is an
// unauthenticated requester and is denied every operation.
//
// Listing and stats gate on the IsStaff platform flag, not on the role
// classification: an analyst with IsStaff set may list users while an
// admin-role user without the flag may not.
func CanAccess(p *Principal, op Operation, targetID uint) bool {
	if p == nil {
		return false
	}
	switch op {
	case OpListUsers, OpViewStats:
		return p.IsStaff
	case OpViewUserDetail:
		// Any authenticated user may view any user's detail.
		return true
	case OpUpdateUserDetail:
		return p.ID == targetID || p.IsStaff
	case OpUpdateOwnProfile:
		return true
	}
	return false
}
