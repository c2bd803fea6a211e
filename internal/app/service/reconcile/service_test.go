package reconcile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/careerpilot/backend/internal/models"
	"github.com/careerpilot/backend/pkg/types"
)

type fakeStore struct {
	plans   map[string]*models.SubscriptionPlan
	subs    map[string]*models.Subscription
	planErr error
	// createHook runs before the insert, simulating a concurrent writer.
	createHook func()
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		plans: map[string]*models.SubscriptionPlan{
			"plan-monthly": {ID: "plan-monthly", Name: "Monthly Plan", Price: 14900, DurationInDays: 30},
		},
		subs: map[string]*models.Subscription{},
	}
}

func (f *fakeStore) PlanByID(_ context.Context, id string) (*models.SubscriptionPlan, error) {
	if f.planErr != nil {
		return nil, f.planErr
	}
	return f.plans[id], nil
}

func (f *fakeStore) SubscriptionByPaymentID(_ context.Context, paymentID string) (*models.Subscription, error) {
	return f.subs[paymentID], nil
}

func (f *fakeStore) CreateSubscription(_ context.Context, sub *models.Subscription) error {
	if f.createHook != nil {
		f.createHook()
	}
	if _, exists := f.subs[sub.RazorpayPaymentID]; exists {
		return ErrDuplicatePayment
	}
	f.subs[sub.RazorpayPaymentID] = sub
	return nil
}

func capturedEvent(paymentID, userID, planID string) *Event {
	return &Event{
		Event: EventPaymentCaptured,
		Payload: EventPayload{Payment: PaymentWrapper{Entity: PaymentEntity{
			ID:    paymentID,
			Notes: PaymentNotes{UserID: userID, PlanID: planID},
		}}},
	}
}

func newTestService(store Store) *Service {
	return NewService(store, zap.NewNop().Sugar())
}

func TestReconcile_CreatesSubscription(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	outcome, sub, err := svc.Reconcile(context.Background(), capturedEvent("pay_1", "user-1", "plan-monthly"))
	require.NoError(t, err)
	require.Equal(t, OutcomeCreated, outcome)
	require.NotNil(t, sub)
	require.Equal(t, "user-1", sub.UserID)
	require.Equal(t, types.SubscriptionStatusActive, sub.Status)
	require.Equal(t, now, sub.StartsAt)
	require.Equal(t, now.Add(30*24*time.Hour), sub.ExpiresAt)
	require.NotEmpty(t, sub.ID)
}

func TestReconcile_RedeliveryIsIdempotent(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ev := capturedEvent("pay_1", "user-1", "plan-monthly")

	outcome, first, err := svc.Reconcile(context.Background(), ev)
	require.NoError(t, err)
	require.Equal(t, OutcomeCreated, outcome)

	for i := 0; i < 3; i++ {
		outcome, again, err := svc.Reconcile(context.Background(), ev)
		require.NoError(t, err)
		require.Equal(t, OutcomeAlreadyProcessed, outcome)
		require.Equal(t, first.ID, again.ID)
	}
	require.Len(t, store.subs, 1)
}

func TestReconcile_IgnoresOtherEvents(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	for _, name := range []string{"payment.failed", "order.paid", "refund.created"} {
		ev := capturedEvent("pay_x", "user-1", "plan-monthly")
		ev.Event = name
		outcome, sub, err := svc.Reconcile(context.Background(), ev)
		require.NoError(t, err)
		require.Equal(t, OutcomeIgnored, outcome)
		require.Nil(t, sub)
	}
	require.Empty(t, store.subs)

	outcome, _, err := svc.Reconcile(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, OutcomeIgnored, outcome)
}

func TestReconcile_MissingMetadata(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	cases := []*Event{
		capturedEvent("", "user-1", "plan-monthly"),
		capturedEvent("pay_1", "", "plan-monthly"),
		capturedEvent("pay_1", "user-1", ""),
	}
	for _, ev := range cases {
		_, _, err := svc.Reconcile(context.Background(), ev)
		require.ErrorIs(t, err, ErrMissingMetadata)
	}
	require.Empty(t, store.subs)
}

func TestReconcile_UnknownPlan(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	_, _, err := svc.Reconcile(context.Background(), capturedEvent("pay_1", "user-1", "plan-nope"))
	require.ErrorIs(t, err, ErrPlanNotFound)
	require.Empty(t, store.subs)
}

func TestReconcile_StoreFailureIsPersistence(t *testing.T) {
	store := newFakeStore()
	store.planErr = errors.New("connection refused")
	svc := newTestService(store)

	_, _, err := svc.Reconcile(context.Background(), capturedEvent("pay_1", "user-1", "plan-monthly"))
	require.ErrorIs(t, err, ErrPersistence)
}

func TestReconcile_LostInsertRaceResolvesToAlreadyProcessed(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	// A concurrent delivery wins between the lookup and the insert.
	winner := &models.Subscription{ID: "sub-winner", RazorpayPaymentID: "pay_1"}
	store.createHook = func() {
		store.subs["pay_1"] = winner
		store.createHook = nil
	}

	outcome, sub, err := svc.Reconcile(context.Background(), capturedEvent("pay_1", "user-1", "plan-monthly"))
	require.NoError(t, err)
	require.Equal(t, OutcomeAlreadyProcessed, outcome)
	require.Equal(t, "sub-winner", sub.ID)
	require.Len(t, store.subs, 1)
}
