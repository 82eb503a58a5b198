package models

import (
	"gorm.io/gorm"
)

// Role enum values
const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

type User struct {
	gorm.Model
	Name     string `json:"name" gorm:"not null"`
	Email    string `json:"email" gorm:"unique;not null"`
	Password string `json:"-" gorm:"not null"`
	Role     string `json:"role" gorm:"type:varchar(20);default:'student'"` // student, instructor, admin
	Phone    string `json:"phone" gorm:"default:''"`
	Avatar   string `json:"avatar" gorm:"default:''"`
	Bio      string `json:"bio" gorm:"type:text;default:''"`
}

// IsAdmin checks if the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsInstructor checks if the user has the instructor role
func (u *User) IsInstructor() bool {
	return u.Role == RoleInstructor
}

// IsStudent checks if the user has the student role
func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}
