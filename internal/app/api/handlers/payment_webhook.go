package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/careerpilot/backend/internal/app/service/reconcile"
	"github.com/careerpilot/backend/internal/models"
	"github.com/careerpilot/backend/pkg/config"
	"github.com/careerpilot/backend/pkg/logctx"
	"github.com/careerpilot/backend/pkg/tool"
	"github.com/careerpilot/backend/pkg/types"
)

const razorpaySignatureHeader = "X-Razorpay-Signature"

// WebhookLogSaver records inbound webhook events for auditing. Writes are
// fire-and-forget; a failed write never affects the gateway response.
type WebhookLogSaver interface {
	Save(ctx context.Context, entry *models.WebhookEventLog)
}

// @Summary      Razorpay Webhook
// @Description  Handles Razorpay payment events. The request body must be the raw JSON event signed with HMAC-SHA256 in the X-Razorpay-Signature header.
// @Tags         Webhook
// @Accept       json
// @Produce      json
// @Param        payload body string true "Razorpay webhook event payload"
// @Success      200  {object}  map[string]bool
// @Router       /api/v1/webhooks/razorpay [post]
// ApiRazorpayWebhook verifies the event signature over the exact raw bytes
// before any parsing, then hands the event to the reconciler. Responses are
// plain JSON rather than the API envelope; the gateway only reads the status
// code.
func ApiRazorpayWebhook(cfg *config.Config, rec *reconcile.Service, wlog WebhookLogSaver, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		l := logctx.FromGin(c, log)

		secret := cfg.Razorpay.WebhookSecret
		if secret == "" {
			l.Errorw("webhook secret not configured")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "webhook not configured"})
			return
		}

		rawBody, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
			return
		}

		signature := c.GetHeader(razorpaySignatureHeader)
		if signature == "" {
			l.Warnw("webhook rejected", "reason", "missing signature")
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing signature"})
			return
		}
		if !reconcile.VerifySignature(rawBody, signature, secret) {
			l.Warnw("webhook rejected", "reason", "invalid signature")
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
			return
		}

		var ev reconcile.Event
		if err := json.Unmarshal(rawBody, &ev); err != nil {
			l.Warnw("webhook rejected", "reason", "malformed payload")
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}

		// The log writes are async; each Save gets its own copy sharing the
		// same row id so the second write updates the first.
		entry := models.WebhookEventLog{
			ID:        tool.GenerateUUIDV7(),
			Provider:  string(types.PaymentProviderRazorpay),
			Event:     ev.Event,
			PaymentID: ev.Payload.Payment.Entity.ID,
			TraceID:   c.GetString("traceID"),
			Data:      datatypes.JSON(rawBody),
			Status:    models.WebhookEventLogStatusReceived,
		}
		received := entry
		wlog.Save(c.Request.Context(), &received)

		outcome, sub, err := rec.Reconcile(c.Request.Context(), &ev)
		if err != nil {
			failed := entry
			failed.Status = models.WebhookEventLogStatusHandleFailed
			wlog.Save(c.Request.Context(), &failed)

			switch {
			case errors.Is(err, reconcile.ErrMissingMetadata):
				c.JSON(http.StatusBadRequest, gin.H{"error": "event missing user or plan metadata"})
			case errors.Is(err, reconcile.ErrPlanNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
			default:
				l.Errorw("webhook reconciliation failed", "error", err.Error())
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process event"})
			}
			return
		}

		handled := entry
		handled.Status = models.WebhookEventLogStatusHandled
		if sub != nil {
			if result, mErr := json.Marshal(map[string]any{"outcome": outcome, "subscription_id": sub.ID}); mErr == nil {
				r := datatypes.JSON(result)
				handled.Result = &r
			}
		}
		wlog.Save(c.Request.Context(), &handled)

		l.Infow("webhook handled", "event", ev.Event, "outcome", outcome)
		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}

func RegisterWebhookRoutes(r gin.IRouter, cfg *config.Config, rec *reconcile.Service, wlog WebhookLogSaver, log *zap.SugaredLogger) {
	r.POST("/razorpay", ApiRazorpayWebhook(cfg, rec, wlog, log))
}
