package plan

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/careerpilot/backend/internal/models"
	"github.com/careerpilot/backend/pkg/tool"
)

// Service reads the static subscription plan reference data.
type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

func (s *Service) List(ctx context.Context) ([]*models.SubscriptionPlan, error) {
	var plans []*models.SubscriptionPlan
	if err := s.db.WithContext(ctx).Order("price asc").Find(&plans).Error; err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return plans, nil
}

// PlanByID returns (nil, nil) when the plan does not exist.
func (s *Service) PlanByID(ctx context.Context, id string) (*models.SubscriptionPlan, error) {
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

var seedPlans = []models.SubscriptionPlan{
	{Name: "Monthly Plan", Description: "₹149/month", Price: 14900, DurationInDays: 30},
	{Name: "Quarterly Plan", Description: "₹399/3 months", Price: 39900, DurationInDays: 90},
}

// Seed inserts the reference plans, skipping names that already exist.
func (s *Service) Seed(ctx context.Context) error {
	for _, p := range seedPlans {
		p.ID = tool.GenerateUUIDV7()
		err := s.db.WithContext(ctx).
			Where(models.SubscriptionPlan{Name: p.Name}).
			FirstOrCreate(&p).Error
		if err != nil {
			return fmt.Errorf("failed to seed plan %s: %w", p.Name, err)
		}
	}
	s.log.Infow("subscription plans seeded", "count", len(seedPlans))
	return nil
}
