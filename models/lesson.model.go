package models

import "gorm.io/gorm"

// Lesson type enum values. The required content field depends on the type:
// video -> VideoURL, article/quiz -> Content, download -> AttachmentURL.
const (
	LessonTypeVideo    = "video"
	LessonTypeArticle  = "article"
	LessonTypeQuiz     = "quiz"
	LessonTypeDownload = "download"
)

type Lesson struct {
	gorm.Model
	SectionID     uint   `json:"section_id" gorm:"index;not null"`
	Title         string `json:"title" gorm:"not null"`
	Type          string `json:"type" gorm:"type:varchar(20);not null"` // video, article, quiz, download
	Description   string `json:"description" gorm:"type:varchar(1000);default:''"`
	VideoURL      string `json:"video_url" gorm:"default:''"`
	Content       string `json:"content" gorm:"type:text;default:''"`
	AttachmentURL string `json:"attachment_url" gorm:"default:''"`
	Duration      int    `json:"duration" gorm:"default:0"` // Minutes
	IsFree        bool   `json:"is_free" gorm:"default:false"`
	Order         int    `json:"order" gorm:"default:0"`

	// Relations
	Section CourseSection `json:"section,omitempty" gorm:"foreignKey:SectionID"`
}
