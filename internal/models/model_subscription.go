package models

import (
	"time"

	"github.com/careerpilot/backend/pkg/types"
)

// Subscription is the durable record created exactly once per captured
// payment. Records are never deleted; a newer active record supersedes an
// older one, and expiry is a read-time comparison on ExpiresAt.
type Subscription struct {
	ID     string                   `gorm:"column:id;type:uuid;primary_key" json:"id"`
	UserID string                   `gorm:"column:user_id;type:varchar(64);not null;index" json:"user_id"`
	PlanID string                   `gorm:"column:plan_id;type:uuid;not null" json:"plan_id"`
	Status types.SubscriptionStatus `gorm:"column:status;type:varchar(32);not null" json:"status"`
	// StartsAt is the capture time of the originating payment.
	StartsAt time.Time `gorm:"column:starts_at;not null" json:"starts_at"`
	// ExpiresAt = StartsAt + plan.DurationInDays days.
	ExpiresAt time.Time `gorm:"column:expires_at;not null" json:"expires_at"`
	// RazorpayPaymentID links the record to the gateway payment. The unique
	// index is what closes the check-then-act race under duplicate webhook
	// delivery: a second insert for the same payment fails instead of
	// creating a second record.
	RazorpayPaymentID string    `gorm:"column:razorpay_payment_id;type:varchar(128);not null;uniqueIndex" json:"razorpay_payment_id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (Subscription) TableName() string {
	return "subscription"
}

// Valid reports whether the subscription grants access at time now.
func (s *Subscription) Valid(now time.Time) bool {
	return s != nil &&
		s.Status == types.SubscriptionStatusActive &&
		s.ExpiresAt.After(now)
}

// EffectiveStatus computes the status at read time. A stored "active" row
// whose expiry has passed reads as expired without any background job.
func (s *Subscription) EffectiveStatus(now time.Time) types.SubscriptionStatus {
	if s == nil {
		return ""
	}
	if s.Status == types.SubscriptionStatusActive && !s.ExpiresAt.After(now) {
		return types.SubscriptionStatusExpired
	}
	return s.Status
}
