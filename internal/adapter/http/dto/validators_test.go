package dto

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func bindWebhook(t *testing.T, body any) error {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")

	var req PaymentWebhookRequest
	return c.ShouldBindJSON(&req)
}

func TestPaymentWebhookRequest_Valid(t *testing.T) {
	err := bindWebhook(t, PaymentWebhookRequest{
		GatewayPaymentID: "pay_abc-123.v2",
		AmountPaise:      500000,
		Currency:         "INR",
		SubscriptionID:   "0c9f8a34-1111-4222-8333-444455556666",
	})
	assert.NoError(t, err)
}

func TestPaymentWebhookRequest_RejectsUnsafeID(t *testing.T) {
	err := bindWebhook(t, PaymentWebhookRequest{
		GatewayPaymentID: "pay' OR 1=1 --",
		AmountPaise:      500000,
		Currency:         "INR",
		SubscriptionID:   "0c9f8a34-1111-4222-8333-444455556666",
	})
	assert.Error(t, err)
}

func TestPaymentWebhookRequest_RejectsNonPositiveAmount(t *testing.T) {
	err := bindWebhook(t, PaymentWebhookRequest{
		GatewayPaymentID: "pay_abc",
		AmountPaise:      -100,
		Currency:         "INR",
		SubscriptionID:   "0c9f8a34-1111-4222-8333-444455556666",
	})
	assert.Error(t, err)
}

func TestPaymentWebhookRequest_RejectsBadSubscriptionID(t *testing.T) {
	err := bindWebhook(t, PaymentWebhookRequest{
		GatewayPaymentID: "pay_abc",
		AmountPaise:      100,
		Currency:         "INR",
		SubscriptionID:   "not-a-uuid",
	})
	assert.Error(t, err)
}

func TestTrimStrings(t *testing.T) {
	reason := "  fee waiver approved by ops \n"
	value := "450000"
	TrimStrings(&reason, &value, nil)
	assert.Equal(t, "fee waiver approved by ops", reason)
	assert.Equal(t, "450000", value)
}
