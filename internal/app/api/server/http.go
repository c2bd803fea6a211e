package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/careerpilot/backend/docs"
	"github.com/careerpilot/backend/internal/app/api/handlers"
	guidesvc "github.com/careerpilot/backend/internal/app/service/guide"
	ordersvc "github.com/careerpilot/backend/internal/app/service/order"
	plansvc "github.com/careerpilot/backend/internal/app/service/plan"
	"github.com/careerpilot/backend/internal/app/service/reconcile"
	"github.com/careerpilot/backend/internal/app/service/statistics"
	subsvc "github.com/careerpilot/backend/internal/app/service/subscription"
	"github.com/careerpilot/backend/internal/app/service/webhook_log"
	cfgpkg "github.com/careerpilot/backend/pkg/config"

	mw "github.com/careerpilot/backend/internal/app/api/middleware"

	metrics "github.com/careerpilot/backend/pkg/metrics"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func newEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	// Add request tracing middleware only; request logger & access log are attached per group in registerRoutes
	r.Use(mw.TraceMiddleware())
	return r
}

type routeDeps struct {
	fx.In

	Log    *zap.SugaredLogger
	Cfg    *cfgpkg.Config
	Guide  *guidesvc.Service
	Order  *ordersvc.Service
	Plans  *plansvc.Service
	Sub    *subsvc.Service
	Stats  *statistics.Service
	Rec    *reconcile.Service
	Wlog   *webhook_log.Service
	Engine *gin.Engine
}

func registerRoutes(d routeDeps) {
	r := d.Engine
	log := d.Log

	// Prometheus metrics
	if d.Cfg != nil && d.Cfg.MetricsAddr != "" {
		p := metrics.NewPrometheus(metrics.NewPrometheusOptions{
			ReqCntURLLabelMappingFn: func(c *gin.Context) string {
				if fp := c.FullPath(); fp != "" {
					return fp
				}
				return c.Request.URL.Path
			},
			Logger: log,
		})
		p.SetListenAddress(d.Cfg.MetricsAddr)
		p.Use(r)

		log.Infow("metrics started", "addr", d.Cfg.MetricsAddr)
	}

	// Public group: request logger + access log, no auth
	pub := r.Group("/")
	pub.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware())
	handlers.RegisterHealthRoutes(pub)
	// Swagger UI
	docs.SwaggerInfo.BasePath = "/"
	pub.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Plans are readable without authentication
	apiPub := r.Group("/api/v1")
	apiPub.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware())
	handlers.RegisterPlanRoutes(apiPub, d.Plans)

	// Webhooks authenticate via signature, not bearer token
	webhooks := r.Group("/api/v1/webhooks")
	webhooks.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware())
	handlers.RegisterWebhookRoutes(webhooks, d.Cfg, d.Rec, d.Wlog, log)

	// Authenticated APIs
	apiV1 := r.Group("/api/v1")
	apiV1.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware(), mw.AuthMiddleware(d.Cfg))
	handlers.RegisterGuideRoutes(apiV1, d.Guide, log)
	handlers.RegisterOrderRoutes(apiV1, d.Order)
	handlers.RegisterSubscriptionRoutes(apiV1, d.Sub)

	// Admin APIs
	handlers.RegisterAdminRoutes(apiV1.Group("/admin"), d.Sub, d.Stats)
}

func runServer(lc fx.Lifecycle, log *zap.SugaredLogger, cfg *cfgpkg.Config, r *gin.Engine) {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting HTTP server", "addr", addr)
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Errorf("server error: %v", err)
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, 120*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

var Module = fx.Options(
	fx.Provide(newEngine),
	fx.Invoke(registerRoutes),
	fx.Invoke(runServer),
)
