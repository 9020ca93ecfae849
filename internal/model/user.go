package model

import "time"

// Role classifies a user for business purposes. It is independent of the
// IsStaff platform flag: administrative endpoints gate on IsStaff, not on
// Role == RoleAdmin.
type Role string

const (
	RoleOperator Role = "operator"
	RoleAnalyst  Role = "analyst"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOperator, RoleAnalyst, RoleAdmin:
		return true
	}
	return false
}

// Display returns the human-readable role label.
func (r Role) Display() string {
	switch r {
	case RoleOperator:
		return "Operator"
	case RoleAnalyst:
		return "Analyst"
	case RoleAdmin:
		return "Admin"
	}
	return string(r)
}

// User represents a registered account in the system.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:150;not null"`
	Email        string    `json:"email" gorm:"size:255;not null;index"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Fullname     string    `json:"fullname" gorm:"size:255"`
	Role         Role      `json:"role" gorm:"size:20;not null;default:'operator';index"`
	IsStaff      bool      `json:"is_staff" gorm:"default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserSummary is the listing projection of a user.
type UserSummary struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Fullname  string    `json:"fullname"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// UserDetail is the full projection of a user, including the display
// form of the role. The staff flag stays internal: it drives access
// decisions but is never serialized out.
type UserDetail struct {
	ID          uint      `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Fullname    string    `json:"fullname"`
	Role        Role      `json:"role"`
	RoleDisplay string    `json:"role_display"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Summary builds the listing projection.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Fullname:  u.Fullname,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// Detail builds the full projection.
func (u *User) Detail() UserDetail {
	return UserDetail{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Fullname:    u.Fullname,
		Role:        u.Role,
		RoleDisplay: u.Role.Display(),
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// UserStats holds aggregate counts grouped by role.
type UserStats struct {
	TotalUsers int64 `json:"total_users"`
	Operators  int64 `json:"operators"`
	Analysts   int64 `json:"analysts"`
	Admins     int64 `json:"admins"`
}
