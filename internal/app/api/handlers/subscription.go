package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	subsvc "github.com/careerpilot/backend/internal/app/service/subscription"
	"github.com/careerpilot/backend/pkg/response"
)

// @Summary      Subscription Status
// @Description  Reports whether the caller holds an active, unexpired subscription.
// @Tags         Subscription
// @Produce      json
// @Success      200  {object}  handlers.RespSubscriptionInfo
// @Router       /api/v1/subscription [get]
func ApiCheckSubscription(svc *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, response.ErrorT[any](response.APIResponseCodeUnauthorized, "unauthorized"))
			return
		}

		info, err := svc.CheckSubscribed(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(info))
	}
}

func RegisterSubscriptionRoutes(r gin.IRouter, svc *subsvc.Service) {
	r.GET("/subscription", ApiCheckSubscription(svc))
}
