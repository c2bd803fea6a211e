package order

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/careerpilot/backend/internal/models"
	"github.com/careerpilot/backend/pkg/config"
	"github.com/careerpilot/backend/pkg/logctx"
)

var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrPlanNotFound  = errors.New("plan not found")
	ErrOrderCreation = errors.New("order creation failed")
)

// Currency for all plans. Prices are stored in paise.
const Currency = "INR"

// GatewayRequest carries what the gateway needs to open an order. Notes are
// opaque metadata the gateway echoes back unmodified on the webhook event;
// they are the only link from a future event back to a user and plan.
type GatewayRequest struct {
	Amount   int64
	Currency string
	Notes    map[string]string
}

type GatewayOrder struct {
	ID       string
	Amount   int64
	Currency string
}

// Gateway abstracts the payment provider's order API.
type Gateway interface {
	CreateOrder(ctx context.Context, req *GatewayRequest) (*GatewayOrder, error)
}

// PlanFinder resolves a subscription plan by id, returning (nil, nil) when
// the plan does not exist.
type PlanFinder interface {
	PlanByID(ctx context.Context, id string) (*models.SubscriptionPlan, error)
}

type CreateOrderResult struct {
	OrderID     string `json:"orderId"`
	RazorpayKey string `json:"razorpayKey"`
	Amount      int64  `json:"amount"`
}

type Service struct {
	cfg   *config.Config
	plans PlanFinder
	gw    Gateway
	log   *zap.SugaredLogger
}

func NewService(cfg *config.Config, plans PlanFinder, gw Gateway, log *zap.SugaredLogger) *Service {
	return &Service{cfg: cfg, plans: plans, gw: gw, log: log}
}

// CreateOrder opens a gateway order for the plan, binding plan and user
// identity into the order notes.
func (s *Service) CreateOrder(ctx context.Context, userID, planID string) (*CreateOrderResult, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}

	plan, err := s.plans.PlanByID(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up plan: %w", err)
	}
	if plan == nil {
		return nil, ErrPlanNotFound
	}

	gwOrder, err := s.gw.CreateOrder(ctx, &GatewayRequest{
		Amount:   plan.Price,
		Currency: Currency,
		Notes:    map[string]string{"planId": plan.ID, "userId": userID},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderCreation, err)
	}

	logctx.FromCtx(ctx, s.log).Infow("payment order created",
		"order_id", gwOrder.ID, "plan_id", plan.ID, "amount", plan.Price)

	return &CreateOrderResult{
		OrderID:     gwOrder.ID,
		RazorpayKey: s.cfg.Razorpay.KeyID,
		Amount:      plan.Price,
	}, nil
}
