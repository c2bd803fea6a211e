package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	statssvc "github.com/careerpilot/backend/internal/app/service/statistics"
	subsvc "github.com/careerpilot/backend/internal/app/service/subscription"
	"github.com/careerpilot/backend/pkg/response"
	"github.com/careerpilot/backend/pkg/types"
)

type ListSubscriptionsRequest struct {
	Filters   []*types.CommonFilter `json:"filters"`
	From      int                   `json:"from"`
	Size      int                   `json:"size"`
	SortBy    string                `json:"sort_by"`
	SortOrder string                `json:"sort_order"`
}

type ListSubscriptionsResponse struct {
	Items []*subsvc.SubscriptionItem `json:"items"`
	Total int64                      `json:"total"`
}

// @Summary      List Subscriptions (Admin)
// @Description  Retrieves a paginated and filterable list of all subscriptions.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body ListSubscriptionsRequest true "List subscriptions request with filters, pagination, and sorting"
// @Success      200  {object}  handlers.RespListSubscriptions
// @Router       /api/v1/admin/subscriptions [post]
func ApiListSubscriptions(sub *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ListSubscriptionsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		scanReq := &subsvc.ScanSubscriptionsRequest{Filters: req.Filters, From: req.From, Size: req.Size, SortBy: req.SortBy, SortOrder: req.SortOrder}
		res, err := sub.ScanSubscriptions(c.Request.Context(), scanReq)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(&ListSubscriptionsResponse{Items: res.Items, Total: res.Total}))
	}
}

// @Summary      Subscription Statistics (Admin)
// @Description  Retrieves subscription counts and revenue grouped by plan.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Success      200  {object}  handlers.RespStatsOverview
// @Router       /api/v1/admin/stats [post]
func ApiStatsOverview(svc *statssvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := svc.Overview(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

func RegisterAdminRoutes(r gin.IRouter, sub *subsvc.Service, stats *statssvc.Service) {
	r.POST("/subscriptions", ApiListSubscriptions(sub))
	r.POST("/stats", ApiStatsOverview(stats))
}
