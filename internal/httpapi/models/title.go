package models

import "time"

type Title struct {
	ID          int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string `json:"name" gorm:"size:256;not null;index"`
	Year        int    `json:"year" gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`

	// associations; category outlives the title and is detached on delete
	CategoryID *int64    `json:"-" gorm:"index"`
	Category   *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL;"`
	Genres     []Genre   `json:"genres,omitempty" gorm:"many2many:title_genres;"`

	CreatedAt time.Time `json:"created_at"`
}

func (Title) TableName() string {
	return "titles"
}
