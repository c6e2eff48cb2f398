package models

type Genre struct {
	ID   int64  `json:"-" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"size:256;not null"`
	Slug string `json:"slug" gorm:"uniqueIndex;size:50;not null"`

	Titles []Title `json:"-" gorm:"many2many:title_genres;"`
}

func (Genre) TableName() string {
	return "genres"
}
