package handlers

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestRegisterRoutes_RegistersEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	RegisterHealthRoutes(r.Group("/"))
	RegisterPlanRoutes(r.Group("/api/v1"), nil)
	RegisterGuideRoutes(r.Group("/api/v1"), nil, nil)
	RegisterOrderRoutes(r.Group("/api/v1"), nil)
	RegisterSubscriptionRoutes(r.Group("/api/v1"), nil)
	RegisterAdminRoutes(r.Group("/api/v1/admin"), nil, nil)
	RegisterWebhookRoutes(r.Group("/api/v1/webhooks"), nil, nil, nil, nil)

	routes := r.Routes()
	contains := func(target string) bool {
		for _, rt := range routes {
			if rt.Method+" "+rt.Path == target {
				return true
			}
		}
		return false
	}

	require.True(t, contains("GET /healthz"))
	require.True(t, contains("GET /api/v1/plans"))
	require.True(t, contains("POST /api/v1/guide"))
	require.True(t, contains("POST /api/v1/orders"))
	require.True(t, contains("GET /api/v1/subscription"))
	require.True(t, contains("POST /api/v1/admin/subscriptions"))
	require.True(t, contains("POST /api/v1/admin/stats"))
	require.True(t, contains("POST /api/v1/webhooks/razorpay"))
}
