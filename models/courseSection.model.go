package models

import "gorm.io/gorm"

type CourseSection struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description" gorm:"type:text;default:''"`
	Order       int    `json:"order" gorm:"default:0"` // Display ordering within the course

	// Relations
	Lessons []Lesson `json:"lessons,omitempty" gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE"`
}
