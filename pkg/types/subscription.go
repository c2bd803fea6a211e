package types

import "time"

type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
)

// PaymentProvider identifies the payment gateway an event came from.
type PaymentProvider string

const (
	PaymentProviderRazorpay PaymentProvider = "razorpay"
)

// SubscriptionInfo is the user-facing view of a subscription. Expiry is
// computed at read time from the stored timestamps, not by a background job.
type SubscriptionInfo struct {
	IsSubscribed bool       `json:"isSubscribed"`
	PlanID       string     `json:"planId,omitempty"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
}
