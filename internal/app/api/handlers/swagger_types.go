package handlers

import (
	"github.com/careerpilot/backend/internal/app/service/order"
	"github.com/careerpilot/backend/internal/app/service/render"
	"github.com/careerpilot/backend/internal/app/service/statistics"
	"github.com/careerpilot/backend/internal/models"
	"github.com/careerpilot/backend/pkg/response"
	"github.com/careerpilot/backend/pkg/types"
)

// RespOK is a generic OK envelope for endpoints returning no specific data.
type RespOK struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    interface{}              `json:"data"`
}

// RespListPlans wraps the plan list in the standard envelope.
type RespListPlans struct {
	Code    response.APIResponseCode   `json:"code"`
	Message string                     `json:"message"`
	Data    []*models.SubscriptionPlan `json:"data"`
}

// RespGuideArtifact wraps the rendered guide artifact in the standard envelope.
type RespGuideArtifact struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    render.Artifact          `json:"data"`
}

// RespCreateOrder wraps the gateway order details in the standard envelope.
type RespCreateOrder struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    order.CreateOrderResult  `json:"data"`
}

// RespSubscriptionInfo wraps the subscription status in the standard envelope.
type RespSubscriptionInfo struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    types.SubscriptionInfo   `json:"data"`
}

// RespListSubscriptions wraps ListSubscriptionsResponse in the standard envelope.
type RespListSubscriptions struct {
	Code    response.APIResponseCode  `json:"code"`
	Message string                    `json:"message"`
	Data    ListSubscriptionsResponse `json:"data"`
}

// RespStatsOverview wraps the statistics overview in the standard envelope.
type RespStatsOverview struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    statistics.Overview      `json:"data"`
}
