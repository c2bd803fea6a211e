package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/careerpilot/backend/internal/models"
	"github.com/careerpilot/backend/pkg/types"
)

// Service reads subscription records. Expiry is always a time comparison
// against the stored expiry timestamp; nothing mutates rows on a schedule.
type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

// CheckSubscribed reports whether the user holds an active, unexpired
// subscription at the time of the call.
func (s *Service) CheckSubscribed(ctx context.Context, userID string) (*types.SubscriptionInfo, error) {
	var sub models.Subscription
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND status = ? AND expires_at > ?", userID, types.SubscriptionStatusActive, time.Now()).
		Order("expires_at desc").
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &types.SubscriptionInfo{IsSubscribed: false}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check subscription: %w", err)
	}
	return &types.SubscriptionInfo{
		IsSubscribed: true,
		PlanID:       sub.PlanID,
		ExpiresAt:    &sub.ExpiresAt,
	}, nil
}

type ScanSubscriptionsRequest struct {
	Filters   []*types.CommonFilter `json:"filters"`
	From      int                   `json:"from"`
	Size      int                   `json:"size"`
	SortBy    string                `json:"sort_by"`
	SortOrder string                `json:"sort_order"`
}

type SubscriptionItem struct {
	ID                string                   `json:"id"`
	UserID            string                   `json:"user_id"`
	PlanID            string                   `json:"plan_id"`
	Status            types.SubscriptionStatus `json:"status"`
	StartsAt          time.Time                `json:"starts_at"`
	ExpiresAt         time.Time                `json:"expires_at"`
	RazorpayPaymentID string                   `json:"razorpay_payment_id"`
	CreatedAt         time.Time                `json:"created_at"`
}

type ScanSubscriptionsResponse struct {
	Items []*SubscriptionItem `json:"items"`
	Total int64               `json:"total"`
}

// filtersAnd combines multiple CommonFilter into a single clause.Expression
type filtersAnd struct{ filters []*types.CommonFilter }

func (w filtersAnd) Build(builder clause.Builder) {
	if len(w.filters) == 0 {
		builder.WriteString("1=1")
		return
	}
	exprs := make([]clause.Expression, 0, len(w.filters))
	for _, f := range w.filters {
		exprs = append(exprs, f)
	}
	clause.And(exprs...).Build(builder)
}

// ScanSubscriptions implements paginated admin listing with filters. The
// returned status is the read-time effective status.
func (s *Service) ScanSubscriptions(ctx context.Context, req *ScanSubscriptionsRequest) (*ScanSubscriptionsResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("nil request")
	}
	if req.Size <= 0 {
		req.Size = 10
	}
	if req.From < 0 {
		req.From = 0
	}

	tx := s.db.WithContext(ctx).Model(&models.Subscription{})
	if len(req.Filters) > 0 {
		tx = tx.Where(clause.Where{Exprs: []clause.Expression{filtersAnd{filters: req.Filters}}})
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count subscriptions: %w", err)
	}

	q := tx.Limit(req.Size)
	if req.From > 0 {
		q = q.Offset(req.From)
	}
	if req.SortBy != "" {
		q = q.Order(clause.OrderBy{Columns: []clause.OrderByColumn{{Column: clause.Column{Name: req.SortBy}, Desc: req.SortOrder != "asc"}}})
	}

	var rows []*models.Subscription
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	now := time.Now()
	items := lo.Map(rows, func(r *models.Subscription, _ int) *SubscriptionItem {
		return &SubscriptionItem{
			ID:                r.ID,
			UserID:            r.UserID,
			PlanID:            r.PlanID,
			Status:            r.EffectiveStatus(now),
			StartsAt:          r.StartsAt,
			ExpiresAt:         r.ExpiresAt,
			RazorpayPaymentID: r.RazorpayPaymentID,
			CreatedAt:         r.CreatedAt,
		}
	})

	return &ScanSubscriptionsResponse{Items: items, Total: total}, nil
}
