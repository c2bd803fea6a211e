package statistics

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/careerpilot/backend/internal/models"
	"github.com/careerpilot/backend/pkg/types"
)

// Service computes admin-facing subscription statistics with grouped
// queries; nothing is precomputed or snapshotted.
type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

type PlanRevenue struct {
	PlanID        string `json:"plan_id"`
	PlanName      string `json:"plan_name"`
	Subscriptions int64  `json:"subscriptions"`
	// Revenue is in minor currency units.
	Revenue int64 `json:"revenue"`
}

type Overview struct {
	TotalSubscriptions   int64          `json:"total_subscriptions"`
	ActiveSubscriptions  int64          `json:"active_subscriptions"`
	ExpiredSubscriptions int64          `json:"expired_subscriptions"`
	RevenueByPlan        []*PlanRevenue `json:"revenue_by_plan"`
}

func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	now := time.Now()
	out := &Overview{}

	if err := s.db.WithContext(ctx).Model(&models.Subscription{}).
		Count(&out.TotalSubscriptions).Error; err != nil {
		return nil, fmt.Errorf("failed to count subscriptions: %w", err)
	}

	if err := s.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("status = ? AND expires_at > ?", types.SubscriptionStatusActive, now).
		Count(&out.ActiveSubscriptions).Error; err != nil {
		return nil, fmt.Errorf("failed to count active subscriptions: %w", err)
	}

	if err := s.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("(status = ? AND expires_at <= ?) OR status = ?",
			types.SubscriptionStatusActive, now, types.SubscriptionStatusExpired).
		Count(&out.ExpiredSubscriptions).Error; err != nil {
		return nil, fmt.Errorf("failed to count expired subscriptions: %w", err)
	}

	var rows []*PlanRevenue
	err := s.db.WithContext(ctx).
		Table("subscription AS s").
		Select("p.id AS plan_id, p.name AS plan_name, COUNT(s.id) AS subscriptions, SUM(p.price) AS revenue").
		Joins("JOIN subscription_plan p ON p.id = s.plan_id").
		Group("p.id, p.name").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate revenue: %w", err)
	}
	out.RevenueByPlan = rows

	return out, nil
}

// Module exposes the statistics service via Fx.
var Module = fx.Options(
	fx.Provide(NewService),
)
