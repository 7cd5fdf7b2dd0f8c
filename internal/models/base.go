package models

import "time"

// Base carries the numeric key and camel-cased timestamp columns shared by
// every table.
type Base struct {
	ID        uint      `json:"id"        gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:createdAt"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updatedAt"`
}
