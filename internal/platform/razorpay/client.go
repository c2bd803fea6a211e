package razorpay

import (
	"context"
	"fmt"

	rzpsdk "github.com/razorpay/razorpay-go"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/careerpilot/backend/internal/app/service/order"
	cfgpkg "github.com/careerpilot/backend/pkg/config"
)

// Gateway wraps the Razorpay SDK behind the order.Gateway contract.
type Gateway struct {
	client *rzpsdk.Client
	log    *zap.SugaredLogger
}

func NewGateway(cfg *cfgpkg.Config, log *zap.SugaredLogger) order.Gateway {
	return &Gateway{
		client: rzpsdk.NewClient(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret),
		log:    log,
	}
}

// CreateOrder opens a Razorpay order with payment auto-capture. The SDK has
// no context support; the per-request HTTP timeout applies instead.
func (g *Gateway) CreateOrder(_ context.Context, req *order.GatewayRequest) (*order.GatewayOrder, error) {
	notes := make(map[string]interface{}, len(req.Notes))
	for k, v := range req.Notes {
		notes[k] = v
	}

	data := map[string]interface{}{
		"amount":          req.Amount,
		"currency":        req.Currency,
		"payment_capture": 1,
		"notes":           notes,
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay order create: %w", err)
	}

	id, _ := body["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("razorpay order create: response missing order id")
	}

	return &order.GatewayOrder{ID: id, Amount: req.Amount, Currency: req.Currency}, nil
}

var Module = fx.Options(
	fx.Provide(NewGateway),
)
