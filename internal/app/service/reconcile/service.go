package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/careerpilot/backend/internal/models"
	"github.com/careerpilot/backend/pkg/logctx"
	"github.com/careerpilot/backend/pkg/tool"
	"github.com/careerpilot/backend/pkg/types"
)

var (
	// ErrMissingMetadata means the event lacks the user/plan linkage and no
	// subscription can be attributed. Surfaced as a non-2xx response so the
	// gateway redelivers.
	ErrMissingMetadata = errors.New("event missing user or plan metadata")
	ErrPlanNotFound    = errors.New("plan not found")
	ErrPersistence     = errors.New("persistence failure")
	// ErrDuplicatePayment is returned by stores when the unique constraint
	// on the gateway payment id rejects an insert.
	ErrDuplicatePayment = errors.New("subscription already exists for payment")
)

type Outcome string

const (
	// OutcomeCreated: first sight of the payment, record materialized.
	OutcomeCreated Outcome = "created"
	// OutcomeAlreadyProcessed: redelivered event, no new record. Not an
	// error; the gateway must receive success so it stops retrying.
	OutcomeAlreadyProcessed Outcome = "already_processed"
	// OutcomeIgnored: event type the reconciler does not consume.
	OutcomeIgnored Outcome = "ignored"
)

// Store is the persistence surface the reconciler appends through. Lookups
// return (nil, nil) when no row exists.
type Store interface {
	PlanByID(ctx context.Context, id string) (*models.SubscriptionPlan, error)
	SubscriptionByPaymentID(ctx context.Context, paymentID string) (*models.Subscription, error)
	// CreateSubscription must map a unique violation on the payment id to
	// ErrDuplicatePayment.
	CreateSubscription(ctx context.Context, sub *models.Subscription) error
}

// Service turns verified captured-payment events into durable subscription
// records exactly once. The webhook is an at-least-once stream: the prior
// lookup is an optimization, the storage-layer unique constraint is the
// guarantee.
type Service struct {
	store Store
	log   *zap.SugaredLogger
	now   func() time.Time
}

func NewService(store Store, log *zap.SugaredLogger) *Service {
	return &Service{store: store, log: log, now: time.Now}
}

func (s *Service) Reconcile(ctx context.Context, ev *Event) (Outcome, *models.Subscription, error) {
	if ev == nil || ev.Event != EventPaymentCaptured {
		return OutcomeIgnored, nil, nil
	}

	payment := ev.Payload.Payment.Entity
	if payment.ID == "" || payment.Notes.UserID == "" || payment.Notes.PlanID == "" {
		return "", nil, ErrMissingMetadata
	}

	existing, err := s.store.SubscriptionByPaymentID(ctx, payment.ID)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if existing != nil {
		return OutcomeAlreadyProcessed, existing, nil
	}

	plan, err := s.store.PlanByID(ctx, payment.Notes.PlanID)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if plan == nil {
		return "", nil, ErrPlanNotFound
	}

	now := s.now().UTC()
	sub := &models.Subscription{
		ID:                tool.GenerateUUIDV7(),
		UserID:            payment.Notes.UserID,
		PlanID:            plan.ID,
		Status:            types.SubscriptionStatusActive,
		StartsAt:          now,
		ExpiresAt:         now.Add(plan.Duration()),
		RazorpayPaymentID: payment.ID,
	}

	if err := s.store.CreateSubscription(ctx, sub); err != nil {
		if errors.Is(err, ErrDuplicatePayment) {
			// Lost the check-then-act race to a concurrent delivery of the
			// same event; the record exists, which is all that matters.
			winner, lookupErr := s.store.SubscriptionByPaymentID(ctx, payment.ID)
			if lookupErr != nil {
				return OutcomeAlreadyProcessed, nil, nil
			}
			return OutcomeAlreadyProcessed, winner, nil
		}
		return "", nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	logctx.FromCtx(ctx, s.log).Infow("subscription created",
		"user_id", sub.UserID, "plan_id", sub.PlanID,
		"payment_id", sub.RazorpayPaymentID, "expires_at", sub.ExpiresAt)

	return OutcomeCreated, sub, nil
}
