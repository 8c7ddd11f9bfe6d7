package models

import "time"

// Role is the account role.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleUser       Role = "user"
)

// UserProfile is an account. AssignedThemeID, when set, pins the user to
// exactly that theme.
type UserProfile struct {
	BaseModel
	Email           string     `gorm:"type:varchar(150);uniqueIndex;not null" json:"email"`
	FullName        string     `gorm:"type:varchar(150)" json:"full_name"`
	Phone           string     `gorm:"type:varchar(30)" json:"phone"`
	Role            Role       `gorm:"type:varchar(20);not null;default:'user';index" json:"role"`
	IsActive        bool       `gorm:"not null;index" json:"is_active"`
	LastLogin       *time.Time `json:"last_login"`
	AssignedThemeID *string    `gorm:"type:varchar(36);index" json:"assigned_theme_id"`
	PasswordHash    string     `gorm:"type:varchar(255);not null" json:"-"`

	AssignedTheme *Theme `gorm:"foreignKey:AssignedThemeID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
}

func (UserProfile) TableName() string { return "user_profiles" }

// IsAdmin reports whether the user is a super admin.
func (u *UserProfile) IsAdmin() bool { return u.Role == RoleSuperAdmin }

// HasAssignedTheme reports whether an admin restricted the user to one theme.
func (u *UserProfile) HasAssignedTheme() bool {
	return u.AssignedThemeID != nil && *u.AssignedThemeID != ""
}

// PinnedThemeID returns the assigned theme id or "".
func (u *UserProfile) PinnedThemeID() string {
	if u.AssignedThemeID == nil {
		return ""
	}
	return *u.AssignedThemeID
}
