package models

import "time"

// SubscriptionPlan is static reference data created by the seed process and
// read-only at runtime. Price is in minor currency units (paise).
type SubscriptionPlan struct {
	ID             string    `gorm:"column:id;type:uuid;primary_key" json:"id"`
	Name           string    `gorm:"column:name;type:varchar(128);not null;uniqueIndex" json:"name"`
	Description    string    `gorm:"column:description;type:varchar(256)" json:"description"`
	Price          int64     `gorm:"column:price;type:bigint;not null" json:"price"`
	DurationInDays int       `gorm:"column:duration_in_days;not null" json:"durationInDays"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (SubscriptionPlan) TableName() string {
	return "subscription_plan"
}

// Duration converts the plan length to a time.Duration.
func (p *SubscriptionPlan) Duration() time.Duration {
	return time.Duration(p.DurationInDays) * 24 * time.Hour
}
