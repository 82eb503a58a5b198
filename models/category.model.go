package models

import "gorm.io/gorm"

type Category struct {
	gorm.Model
	Name        string `json:"name" gorm:"unique;not null"`
	Slug        string `json:"slug" gorm:"unique;not null"`
	Description string `json:"description" gorm:"type:text;default:''"`
	Icon        string `json:"icon" gorm:"default:''"`
	Image       string `json:"image" gorm:"default:''"`
	Order       int    `json:"order" gorm:"default:0"`
	IsActive    bool   `json:"is_active" gorm:"default:true"`
}
