package models

import "gorm.io/gorm"

// Course level enum values
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
)

type Course struct {
	gorm.Model
	Title            string  `json:"title" gorm:"not null"`
	Slug             string  `json:"slug" gorm:"unique;not null"`
	ShortDescription string  `json:"short_description" gorm:"type:varchar(500)"`
	Description      string  `json:"description" gorm:"type:text"`
	InstructorID     uint    `json:"instructor_id" gorm:"index;not null"`
	CategoryID       uint    `json:"category_id" gorm:"index;not null"`
	Price            float64 `json:"price" gorm:"type:decimal(10,2);not null;default:0"`
	Level            string  `json:"level" gorm:"type:varchar(20);default:'Beginner'"`
	Thumbnail        string  `json:"thumbnail" gorm:"default:''"`
	IsPublished      bool    `json:"is_published" gorm:"default:false"`

	// Relations
	Instructor User            `json:"instructor,omitempty" gorm:"foreignKey:InstructorID"`
	Category   Category        `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Sections   []CourseSection `json:"sections,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

// IsFree checks if the course can be enrolled without payment
func (c *Course) IsFree() bool {
	return c.Price == 0
}
