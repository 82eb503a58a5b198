package models

import (
	"time"

	"gorm.io/gorm"
)

// LessonProgress tracks a learner's position in a single lesson. One row per
// (user, lesson) pair. CompletedAt is non-null iff IsCompleted is true.
type LessonProgress struct {
	gorm.Model
	UserID       uint       `json:"user_id" gorm:"uniqueIndex:idx_progress_user_lesson;not null"`
	LessonID     uint       `json:"lesson_id" gorm:"uniqueIndex:idx_progress_user_lesson;not null"`
	IsCompleted  bool       `json:"is_completed" gorm:"default:false"`
	LastPosition int        `json:"last_position" gorm:"default:0"` // Seconds into the lesson player
	CompletedAt  *time.Time `json:"completed_at"`

	// Relations
	User   User   `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Lesson Lesson `json:"lesson,omitempty" gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE"`
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}
