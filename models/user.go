package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"

	// DisplayRoleDeveloper is shown in place of the stored role for the developer account.
	// It never grants anything.
	DisplayRoleDeveloper = "DEVELOPER"
)

// Valid reports whether r is a known role
func (r UserRole) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	Name      *string   `json:"name"`
	Role      UserRole  `json:"role" gorm:"not null;default:'USER'"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// DisplayRole returns the label shown for u; developerUsername gets DEVELOPER.
func (u User) DisplayRole(developerUsername string) string {
	if developerUsername != "" && u.Username == developerUsername {
		return DisplayRoleDeveloper
	}
	return string(u.Role)
}
