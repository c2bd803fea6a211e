package handlers

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/careerpilot/backend/internal/app/service/reconcile"
	"github.com/careerpilot/backend/internal/models"
	"github.com/careerpilot/backend/pkg/config"
)

const testWebhookSecret = "whsec_test"

type fakeReconcileStore struct {
	mu    sync.Mutex
	plans map[string]*models.SubscriptionPlan
	subs  map[string]*models.Subscription
	reads int
}

func newFakeReconcileStore() *fakeReconcileStore {
	return &fakeReconcileStore{
		plans: map[string]*models.SubscriptionPlan{
			"plan-monthly": {ID: "plan-monthly", Name: "Monthly Plan", Price: 14900, DurationInDays: 30},
		},
		subs: map[string]*models.Subscription{},
	}
}

func (f *fakeReconcileStore) PlanByID(_ context.Context, id string) (*models.SubscriptionPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	return f.plans[id], nil
}

func (f *fakeReconcileStore) SubscriptionByPaymentID(_ context.Context, paymentID string) (*models.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	return f.subs[paymentID], nil
}

func (f *fakeReconcileStore) CreateSubscription(_ context.Context, sub *models.Subscription) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.subs[sub.RazorpayPaymentID]; exists {
		return reconcile.ErrDuplicatePayment
	}
	f.subs[sub.RazorpayPaymentID] = sub
	return nil
}

type memoryWebhookLog struct {
	mu      sync.Mutex
	entries []models.WebhookEventLog
}

func (m *memoryWebhookLog) Save(_ context.Context, entry *models.WebhookEventLog) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, *entry)
}

func signBody(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func capturedPayload(paymentID, userID, planID string) []byte {
	b, _ := json.Marshal(map[string]any{
		"event": "payment.captured",
		"payload": map[string]any{
			"payment": map[string]any{
				"entity": map[string]any{
					"id":     paymentID,
					"amount": 14900,
					"notes":  map[string]string{"userId": userID, "planId": planID},
				},
			},
		},
	})
	return b
}

func newWebhookRouter(store reconcile.Store, wlog WebhookLogSaver, secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Razorpay: config.RazorpayConfig{WebhookSecret: secret}}
	rec := reconcile.NewService(store, zap.NewNop().Sugar())
	r := gin.New()
	g := r.Group("/api/v1/webhooks")
	RegisterWebhookRoutes(g, cfg, rec, wlog, zap.NewNop().Sugar())
	return r
}

func postWebhook(r *gin.Engine, body []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/razorpay", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set("X-Razorpay-Signature", signature)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRazorpayWebhook_CapturedPaymentCreatesSubscription(t *testing.T) {
	store := newFakeReconcileStore()
	r := newWebhookRouter(store, &memoryWebhookLog{}, testWebhookSecret)

	body := capturedPayload("pay_1", "user-1", "plan-monthly")
	w := postWebhook(r, body, signBody(body, testWebhookSecret))

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"received":true}`, w.Body.String())
	require.Len(t, store.subs, 1)
	require.Equal(t, "user-1", store.subs["pay_1"].UserID)
}

func TestRazorpayWebhook_InvalidSignatureRejectedBeforeAnyWork(t *testing.T) {
	store := newFakeReconcileStore()
	wlog := &memoryWebhookLog{}
	r := newWebhookRouter(store, wlog, testWebhookSecret)

	body := capturedPayload("pay_1", "user-1", "plan-monthly")
	w := postWebhook(r, body, signBody(body, "wrong-secret"))

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Empty(t, store.subs)
	require.Zero(t, store.reads, "store untouched on signature failure")
	require.Empty(t, wlog.entries, "nothing logged for unauthenticated events")
}

func TestRazorpayWebhook_MissingSignature(t *testing.T) {
	store := newFakeReconcileStore()
	r := newWebhookRouter(store, &memoryWebhookLog{}, testWebhookSecret)

	w := postWebhook(r, capturedPayload("pay_1", "user-1", "plan-monthly"), "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Zero(t, store.reads)
}

func TestRazorpayWebhook_UnconfiguredSecret(t *testing.T) {
	store := newFakeReconcileStore()
	r := newWebhookRouter(store, &memoryWebhookLog{}, "")

	body := capturedPayload("pay_1", "user-1", "plan-monthly")
	w := postWebhook(r, body, signBody(body, "anything"))
	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRazorpayWebhook_MalformedBodyWithValidSignature(t *testing.T) {
	store := newFakeReconcileStore()
	r := newWebhookRouter(store, &memoryWebhookLog{}, testWebhookSecret)

	body := []byte(`{"event": "payment.captured", truncated`)
	w := postWebhook(r, body, signBody(body, testWebhookSecret))
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Zero(t, store.reads)
}

func TestRazorpayWebhook_DuplicateDeliveryStillSucceeds(t *testing.T) {
	store := newFakeReconcileStore()
	r := newWebhookRouter(store, &memoryWebhookLog{}, testWebhookSecret)

	body := capturedPayload("pay_1", "user-1", "plan-monthly")
	sig := signBody(body, testWebhookSecret)

	for i := 0; i < 3; i++ {
		w := postWebhook(r, body, sig)
		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"received":true}`, w.Body.String())
	}
	require.Len(t, store.subs, 1, "single subscription despite redelivery")
}

func TestRazorpayWebhook_UnknownPlan(t *testing.T) {
	store := newFakeReconcileStore()
	r := newWebhookRouter(store, &memoryWebhookLog{}, testWebhookSecret)

	body := capturedPayload("pay_1", "user-1", "plan-nope")
	w := postWebhook(r, body, signBody(body, testWebhookSecret))
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Empty(t, store.subs)
}

func TestRazorpayWebhook_MissingNotes(t *testing.T) {
	store := newFakeReconcileStore()
	r := newWebhookRouter(store, &memoryWebhookLog{}, testWebhookSecret)

	body := capturedPayload("pay_1", "", "")
	w := postWebhook(r, body, signBody(body, testWebhookSecret))
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Empty(t, store.subs)
}

func TestRazorpayWebhook_IgnoredEventAcknowledged(t *testing.T) {
	store := newFakeReconcileStore()
	r := newWebhookRouter(store, &memoryWebhookLog{}, testWebhookSecret)

	body, _ := json.Marshal(map[string]any{"event": "payment.failed", "payload": map[string]any{}})
	w := postWebhook(r, body, signBody(body, testWebhookSecret))
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"received":true}`, w.Body.String())
	require.Empty(t, store.subs)
}
