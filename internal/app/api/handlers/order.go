package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	ordersvc "github.com/careerpilot/backend/internal/app/service/order"
	"github.com/careerpilot/backend/pkg/response"
)

type CreateOrderRequest struct {
	PlanID string `json:"planId" binding:"required"`
}

// @Summary      Create Payment Order
// @Description  Opens a Razorpay order for the selected subscription plan.
// @Tags         Orders
// @Accept       json
// @Produce      json
// @Param        request body CreateOrderRequest true "Plan selection"
// @Success      200  {object}  handlers.RespCreateOrder
// @Router       /api/v1/orders [post]
func ApiCreateOrder(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}

		userID := c.GetString("user_id")
		res, err := svc.CreateOrder(c.Request.Context(), userID, req.PlanID)
		if err != nil {
			switch {
			case errors.Is(err, ordersvc.ErrUnauthorized):
				c.JSON(http.StatusUnauthorized, response.ErrorT[any](response.APIResponseCodeUnauthorized, "unauthorized"))
			case errors.Is(err, ordersvc.ErrPlanNotFound):
				c.JSON(http.StatusNotFound, response.ErrorT[any](response.APIResponseCodeNotFound, "plan not found"))
			default:
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, "failed to create order"))
			}
			return
		}

		c.JSON(http.StatusOK, response.OKT(res))
	}
}

func RegisterOrderRoutes(r gin.IRouter, svc *ordersvc.Service) {
	r.POST("/orders", ApiCreateOrder(svc))
}
