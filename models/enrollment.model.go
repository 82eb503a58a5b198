package models

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment status enum values
const (
	EnrollmentActive    = "active"
	EnrollmentCancelled = "cancelled"
)

// Enrollment links a learner to a course. One row per (user, course) pair,
// enforced by a composite unique index. CompletedAt is set once when the
// progress percentage first reaches 100 and is never cleared afterwards.
type Enrollment struct {
	gorm.Model
	UserID             uint       `json:"user_id" gorm:"uniqueIndex:idx_enrollment_user_course;not null"`
	CourseID           uint       `json:"course_id" gorm:"uniqueIndex:idx_enrollment_user_course;not null"`
	ProgressPercentage float64    `json:"progress_percentage" gorm:"type:decimal(5,2);not null;default:0"`
	Status             string     `json:"status" gorm:"type:varchar(20);default:'active'"`
	EnrolledAt         time.Time  `json:"enrolled_at"`
	CompletedAt        *time.Time `json:"completed_at"`

	// Relations
	User   User   `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Course Course `json:"course,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}
