package models

import "gorm.io/gorm"

type Review struct {
	gorm.Model
	UserID     uint   `json:"user_id" gorm:"uniqueIndex:idx_review_user_course;not null"`
	CourseID   uint   `json:"course_id" gorm:"uniqueIndex:idx_review_user_course;not null"`
	Rating     int    `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"` // 1-5 rating
	Comment    string `json:"comment" gorm:"type:varchar(1000);default:''"`
	IsApproved bool   `json:"is_approved" gorm:"default:true"`

	// Relations
	User   User   `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Course Course `json:"course,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}
