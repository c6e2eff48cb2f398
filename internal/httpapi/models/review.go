package models

import "time"

// Review is a single scored write-up of a title. The composite unique
// index is the authoritative guard for the one-review-per-author rule;
// the service layer only pre-checks it.
type Review struct {
	ID       int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	TitleID  int64     `json:"title_id" gorm:"not null;index;uniqueIndex:idx_reviews_title_author"`
	AuthorID string    `json:"author_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_reviews_title_author"`
	Text     string    `json:"text" gorm:"type:text;not null"`
	Score    int       `json:"score" gorm:"not null;check:score >= 1 AND score <= 10"`
	PubDate  time.Time `json:"pub_date" gorm:"autoCreateTime"`

	Author User  `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
	Title  Title `json:"title,omitempty" gorm:"foreignKey:TitleID;constraint:OnDelete:CASCADE;"`
}

func (Review) TableName() string {
	return "reviews"
}
