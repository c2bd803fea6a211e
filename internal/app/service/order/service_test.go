package order

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/careerpilot/backend/internal/models"
	"github.com/careerpilot/backend/pkg/config"
)

type fakePlanFinder struct {
	plans map[string]*models.SubscriptionPlan
}

func (f *fakePlanFinder) PlanByID(_ context.Context, id string) (*models.SubscriptionPlan, error) {
	return f.plans[id], nil
}

type fakeGateway struct {
	lastReq *GatewayRequest
	err     error
}

func (f *fakeGateway) CreateOrder(_ context.Context, req *GatewayRequest) (*GatewayOrder, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &GatewayOrder{ID: "order_abc", Amount: req.Amount, Currency: req.Currency}, nil
}

func newTestService(gw Gateway) *Service {
	cfg := &config.Config{Razorpay: config.RazorpayConfig{KeyID: "rzp_test_key"}}
	plans := &fakePlanFinder{plans: map[string]*models.SubscriptionPlan{
		"plan-monthly": {ID: "plan-monthly", Name: "Monthly Plan", Price: 14900, DurationInDays: 30},
	}}
	return NewService(cfg, plans, gw, zap.NewNop().Sugar())
}

func TestCreateOrder_Succeeds(t *testing.T) {
	gw := &fakeGateway{}
	svc := newTestService(gw)

	res, err := svc.CreateOrder(context.Background(), "user-1", "plan-monthly")
	require.NoError(t, err)
	require.Equal(t, "order_abc", res.OrderID)
	require.Equal(t, "rzp_test_key", res.RazorpayKey)
	require.Equal(t, int64(14900), res.Amount)

	// Notes carry the linkage the webhook relies on
	require.Equal(t, "INR", gw.lastReq.Currency)
	require.Equal(t, "user-1", gw.lastReq.Notes["userId"])
	require.Equal(t, "plan-monthly", gw.lastReq.Notes["planId"])
}

func TestCreateOrder_RequiresUser(t *testing.T) {
	gw := &fakeGateway{}
	svc := newTestService(gw)

	_, err := svc.CreateOrder(context.Background(), "", "plan-monthly")
	require.ErrorIs(t, err, ErrUnauthorized)
	require.Nil(t, gw.lastReq)
}

func TestCreateOrder_UnknownPlan(t *testing.T) {
	gw := &fakeGateway{}
	svc := newTestService(gw)

	_, err := svc.CreateOrder(context.Background(), "user-1", "plan-nope")
	require.ErrorIs(t, err, ErrPlanNotFound)
	require.Nil(t, gw.lastReq)
}

func TestCreateOrder_GatewayFailure(t *testing.T) {
	gw := &fakeGateway{err: errors.New("gateway down")}
	svc := newTestService(gw)

	_, err := svc.CreateOrder(context.Background(), "user-1", "plan-monthly")
	require.ErrorIs(t, err, ErrOrderCreation)
}
