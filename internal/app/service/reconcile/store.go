package reconcile

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/careerpilot/backend/internal/models"
)

type gormStore struct {
	db *gorm.DB
}

// NewStore returns the GORM-backed Store. Requires the DB to be opened with
// TranslateError so unique violations surface as gorm.ErrDuplicatedKey.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) PlanByID(ctx context.Context, id string) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}
	return &plan, nil
}

func (s *gormStore) SubscriptionByPaymentID(ctx context.Context, paymentID string) (*models.Subscription, error) {
	var sub models.Subscription
	err := s.db.WithContext(ctx).Where("razorpay_payment_id = ?", paymentID).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}
	return &sub, nil
}

func (s *gormStore) CreateSubscription(ctx context.Context, sub *models.Subscription) error {
	err := s.db.WithContext(ctx).Create(sub).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %s", ErrDuplicatePayment, sub.RazorpayPaymentID)
	}
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	return nil
}
