package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/careerpilot/backend/internal/app/api/server"
	"github.com/careerpilot/backend/internal/app/service/guide"
	"github.com/careerpilot/backend/internal/app/service/order"
	"github.com/careerpilot/backend/internal/app/service/plan"
	"github.com/careerpilot/backend/internal/app/service/reconcile"
	"github.com/careerpilot/backend/internal/app/service/render"
	"github.com/careerpilot/backend/internal/app/service/statistics"
	"github.com/careerpilot/backend/internal/app/service/subscription"
	"github.com/careerpilot/backend/internal/app/service/webhook_log"
	"github.com/careerpilot/backend/internal/platform/db"
	"github.com/careerpilot/backend/internal/platform/gemini"
	"github.com/careerpilot/backend/internal/platform/razorpay"
	"github.com/careerpilot/backend/pkg/config"
	"github.com/careerpilot/backend/pkg/logger"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	server.Module,
	plan.Module,
	subscription.Module,
	statistics.Module,
	webhook_log.Module,
	reconcile.Module,
	gemini.Module,
	razorpay.Module,
	render.Module,
	guide.Module,
	order.Module,
)
