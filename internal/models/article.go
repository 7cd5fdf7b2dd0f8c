package models

import "time"

// PremiumCategory is the category reserved for subscribers.
const PremiumCategory = "Premium"

// Article is a content record. Rows are insert-only.
type Article struct {
	Base
	Title           string    `json:"title"            gorm:"size:255;not null"`
	Summary         string    `json:"summary"          gorm:"type:text;not null"`
	FullContent     string    `json:"full_content"     gorm:"type:text;not null"`
	Category        *string   `json:"category"         gorm:"size:191;index"`
	PublicationDate time.Time `json:"publication_date" gorm:"not null"`
	SourceURL       *string   `json:"source_url"       gorm:"size:512;index"`
}

func (Article) TableName() string { return "Articles" }
