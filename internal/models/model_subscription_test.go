package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/careerpilot/backend/pkg/types"
)

func TestSubscription_EffectiveStatus(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		sub  Subscription
		want types.SubscriptionStatus
	}{
		{
			"active before expiry",
			Subscription{Status: types.SubscriptionStatusActive, ExpiresAt: now.Add(time.Hour)},
			types.SubscriptionStatusActive,
		},
		{
			"active row past expiry reads expired",
			Subscription{Status: types.SubscriptionStatusActive, ExpiresAt: now.Add(-time.Second)},
			types.SubscriptionStatusExpired,
		},
		{
			"cancelled stays cancelled",
			Subscription{Status: types.SubscriptionStatusCancelled, ExpiresAt: now.Add(time.Hour)},
			types.SubscriptionStatusCancelled,
		},
		{
			"expired stays expired",
			Subscription{Status: types.SubscriptionStatusExpired, ExpiresAt: now.Add(-time.Hour)},
			types.SubscriptionStatusExpired,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.sub.EffectiveStatus(now))
		})
	}
}

func TestSubscription_Valid(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	active := Subscription{Status: types.SubscriptionStatusActive, ExpiresAt: now.Add(time.Minute)}
	require.True(t, active.Valid(now))
	require.False(t, active.Valid(now.Add(2*time.Minute)))

	cancelled := Subscription{Status: types.SubscriptionStatusCancelled, ExpiresAt: now.Add(time.Hour)}
	require.False(t, cancelled.Valid(now))
}

func TestSubscriptionPlan_Duration(t *testing.T) {
	p := SubscriptionPlan{DurationInDays: 30}
	require.Equal(t, 30*24*time.Hour, p.Duration())
}
