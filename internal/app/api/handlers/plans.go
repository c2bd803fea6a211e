package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	plansvc "github.com/careerpilot/backend/internal/app/service/plan"
	"github.com/careerpilot/backend/pkg/response"
)

// @Summary      List Subscription Plans
// @Description  Returns the available subscription plans ordered by price.
// @Tags         Plans
// @Produce      json
// @Success      200  {object}  handlers.RespListPlans
// @Router       /api/v1/plans [get]
func ApiListPlans(svc *plansvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		plans, err := svc.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(plans))
	}
}

func RegisterPlanRoutes(r gin.IRouter, svc *plansvc.Service) {
	r.GET("/plans", ApiListPlans(svc))
}
