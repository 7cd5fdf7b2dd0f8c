package models

// User is a registered account. Password holds the bcrypt hash and is never
// serialized.
type User struct {
	Base
	Email              string `json:"email"               gorm:"size:191;uniqueIndex;not null"`
	Password           string `json:"-"                   gorm:"not null"`
	SubscriptionStatus bool   `json:"subscription_status" gorm:"not null;default:false"`
}

func (User) TableName() string { return "Users" }
