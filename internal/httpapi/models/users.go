package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the three-tier access level of a user.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Valid reports whether the role is one of the known tiers.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleModerator || r == RoleAdmin
}

func (r Role) IsAdmin() bool     { return r == RoleAdmin }
func (r Role) IsModerator() bool { return r == RoleModerator }

type User struct {
	ID        string `gorm:"primaryKey;type:uuid" json:"id"`
	Username  string `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email     string `gorm:"uniqueIndex;size:254;not null" json:"email"`
	FirstName string `gorm:"size:150" json:"first_name"`
	LastName  string `gorm:"size:150" json:"last_name"`
	Bio       string `gorm:"type:text" json:"bio"`
	Role      Role   `gorm:"size:20;default:'user';not null" json:"role"`
	// bcrypt hash of the last issued confirmation code; empty until signup
	ConfirmationCode string    `gorm:"column:confirmation_code_hash;size:100" json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = RoleUser
	}
	return
}

func (User) TableName() string {
	return "users"
}

// CanModerate reports whether the user may edit or delete content
// authored by someone else.
func (user *User) CanModerate() bool {
	return user.Role.IsModerator() || user.Role.IsAdmin()
}
