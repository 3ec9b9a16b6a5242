package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wallet-ledger-engine/config"
	"wallet-ledger-engine/internal/adapter/http/dto"
	"wallet-ledger-engine/internal/adapter/http/middleware"
	"wallet-ledger-engine/internal/core/domain"
	"wallet-ledger-engine/internal/core/ports"
	"wallet-ledger-engine/internal/core/ports/mocks"
	"wallet-ledger-engine/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newJSONContext(t *testing.T, method, path string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

// --- Webhook Handler Tests ---

func TestConfirmPayment_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	guard := mocks.NewMockContractGuard(ctrl)
	h := NewWebhookHandler(guard)

	subID := uuid.New()
	walletID := uuid.New()
	entry := &domain.LedgerEntry{
		ID:                uuid.New(),
		WalletID:          walletID,
		AmountPaise:       500000,
		EntryType:         domain.EntryTypeDeposit,
		ReferenceType:     domain.ReferenceTypePayment,
		ReferenceID:       "pay_123",
		BalanceAfterPaise: 500000,
		CreatedAt:         time.Now().UTC(),
	}

	guard.EXPECT().ConfirmPayment(gomock.Any(), domain.GatewayPaymentEvent{
		GatewayPaymentID: "pay_123",
		AmountPaise:      500000,
		Currency:         "INR",
		SubscriptionRef:  subID,
	}, gomock.Any()).Return(entry, nil)

	c, w := newJSONContext(t, http.MethodPost, "/api/v1/webhooks/gateway/payment", dto.PaymentWebhookRequest{
		GatewayPaymentID: "pay_123",
		AmountPaise:      500000,
		Currency:         "INR",
		SubscriptionID:   subID.String(),
	})

	h.ConfirmPayment(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, entry.ID.String(), data["id"])
	assert.Equal(t, float64(500000), data["amount_paise"])
	assert.Equal(t, "DEPOSIT", data["entry_type"])
}

func TestConfirmPayment_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	guard := mocks.NewMockContractGuard(ctrl)
	h := NewWebhookHandler(guard)

	// Empty body => binding error, guard never called
	c, w := newJSONContext(t, http.MethodPost, "/api/v1/webhooks/gateway/payment", map[string]any{})

	h.ConfirmPayment(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConfirmPayment_AmountMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	guard := mocks.NewMockContractGuard(ctrl)
	h := NewWebhookHandler(guard)

	subID := uuid.New()
	guard.EXPECT().ConfirmPayment(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, apperror.ErrPaymentAmountMismatch(subID.String(), 500000, 400000))

	c, w := newJSONContext(t, http.MethodPost, "/api/v1/webhooks/gateway/payment", dto.PaymentWebhookRequest{
		GatewayPaymentID: "pay_123",
		AmountPaise:      400000,
		Currency:         "INR",
		SubscriptionID:   subID.String(),
	})

	h.ConfirmPayment(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "PAYMENT_AMOUNT_MISMATCH", resp["error_code"])
	// Critical errors must not leak their detail context to the client
	assert.Nil(t, resp["context"])
}

// --- Wallet Handler Tests ---

func TestGetBalance_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledgerSvc := mocks.NewMockLedgerService(ctrl)
	h := NewWalletHandler(ledgerSvc, mocks.NewMockFundLockService(ctrl))

	walletID := uuid.New()
	ledgerSvc.EXPECT().GetBalance(gomock.Any(), walletID).Return(&domain.Balance{
		WalletID:           walletID,
		BalancePaise:       750000,
		LockedBalancePaise: 200000,
		AvailablePaise:     550000,
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/wallets/"+walletID.String()+"/balance", nil)
	c.Params = gin.Params{{Key: "id", Value: walletID.String()}}

	h.GetBalance(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(550000), data["available_paise"])
}

func TestGetBalance_BadWalletID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewWalletHandler(mocks.NewMockLedgerService(ctrl), mocks.NewMockFundLockService(ctrl))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/wallets/nope/balance", nil)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}

	h.GetBalance(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateLock_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	lockSvc := mocks.NewMockFundLockService(ctrl)
	h := NewWalletHandler(mocks.NewMockLedgerService(ctrl), lockSvc)

	walletID := uuid.New()
	lock := &domain.FundLock{
		ID:          uuid.New(),
		WalletID:    walletID,
		AmountPaise: 100000,
		Reason:      "manual hold",
		Status:      domain.LockStatusActive,
		CreatedAt:   time.Now().UTC(),
		ExpiresAt:   time.Now().UTC().Add(time.Hour),
	}
	lockSvc.EXPECT().
		Lock(gomock.Any(), walletID, int64(100000), "manual hold", time.Hour).
		Return(lock, nil)

	c, w := newJSONContext(t, http.MethodPost, "/api/v1/locks", dto.FundLockRequest{
		WalletID:    walletID.String(),
		AmountPaise: 100000,
		Reason:      "manual hold",
		TTLSeconds:  3600,
	})

	h.CreateLock(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "ACTIVE", data["status"])
}

func TestCreateLock_ExceedsAvailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	lockSvc := mocks.NewMockFundLockService(ctrl)
	h := NewWalletHandler(mocks.NewMockLedgerService(ctrl), lockSvc)

	walletID := uuid.New()
	lockSvc.EXPECT().
		Lock(gomock.Any(), walletID, int64(900000), gomock.Any(), gomock.Any()).
		Return(nil, apperror.ErrLockExceedsAvailable(500000, 900000))

	c, w := newJSONContext(t, http.MethodPost, "/api/v1/locks", dto.FundLockRequest{
		WalletID:    walletID.String(),
		AmountPaise: 900000,
		Reason:      "manual hold",
		TTLSeconds:  3600,
	})

	h.CreateLock(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "LOCK_EXCEEDS_AVAILABLE", resp["error_code"])
	// Business errors keep their structured context
	ctxMap := resp["context"].(map[string]interface{})
	assert.Equal(t, float64(500000), ctxMap["available_paise"])
}

func TestReleaseLock_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	lockSvc := mocks.NewMockFundLockService(ctrl)
	h := NewWalletHandler(mocks.NewMockLedgerService(ctrl), lockSvc)

	lockID := uuid.New()
	lockSvc.EXPECT().Release(gomock.Any(), lockID).Return(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/locks/"+lockID.String()+"/release", nil)
	c.Params = gin.Params{{Key: "id", Value: lockID.String()}}

	h.ReleaseLock(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

// --- Withdrawal Handler Tests ---

func testLimits() config.LimitsConfig {
	return config.LimitsConfig{
		MaxDailyWithdrawalPaise: 1000000,
		WithdrawalLockTTL:       30 * time.Minute,
	}
}

func TestWithdrawalRequest_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mocks.NewMockWithdrawalService(ctrl)
	h := NewWithdrawalHandler(svc, testLimits())

	userID := uuid.New()
	lock := &domain.FundLock{
		ID:          uuid.New(),
		WalletID:    uuid.New(),
		AmountPaise: 300000,
		Reason:      "withdrawal_hold",
		Status:      domain.LockStatusActive,
		ExpiresAt:   time.Now().UTC().Add(30 * time.Minute),
	}
	svc.EXPECT().
		Request(gomock.Any(), userID, int64(300000), int64(1000000), 30*time.Minute).
		Return(lock, nil)

	c, w := newJSONContext(t, http.MethodPost, "/api/v1/withdrawals", dto.WithdrawalRequest{
		UserID:      userID.String(),
		AmountPaise: 300000,
	})

	h.Request(c)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestWithdrawalRequest_ComplianceRefusal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mocks.NewMockWithdrawalService(ctrl)
	h := NewWithdrawalHandler(svc, testLimits())

	userID := uuid.New()
	svc.EXPECT().
		Request(gomock.Any(), userID, gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, apperror.ErrIneligibleAction("withdrawal", nil, []string{"user is blacklisted"}))

	c, w := newJSONContext(t, http.MethodPost, "/api/v1/withdrawals", dto.WithdrawalRequest{
		UserID:      userID.String(),
		AmountPaise: 300000,
	})

	h.Request(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INELIGIBLE_ACTION", resp["error_code"])
}

func TestWithdrawalSettle_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mocks.NewMockWithdrawalService(ctrl)
	h := NewWithdrawalHandler(svc, testLimits())

	lockID := uuid.New()
	entry := &domain.LedgerEntry{
		ID:            uuid.New(),
		WalletID:      uuid.New(),
		AmountPaise:   -300000,
		EntryType:     domain.EntryTypeWithdrawal,
		ReferenceType: domain.ReferenceTypeWithdrawal,
		ReferenceID:   "payout_77",
		CreatedAt:     time.Now().UTC(),
	}
	svc.EXPECT().Settle(gomock.Any(), lockID, "payout_77").Return(entry, nil)

	c, w := newJSONContext(t, http.MethodPost, "/api/v1/withdrawals/"+lockID.String()+"/settle",
		dto.WithdrawalSettleRequest{ReferenceID: "payout_77"})
	c.Params = gin.Params{{Key: "lock_id", Value: lockID.String()}}

	h.Settle(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(-300000), data["amount_paise"])
}

func TestWithdrawalCancel_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mocks.NewMockWithdrawalService(ctrl)
	h := NewWithdrawalHandler(svc, testLimits())

	lockID := uuid.New()
	svc.EXPECT().Cancel(gomock.Any(), lockID).Return(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/withdrawals/"+lockID.String()+"/cancel", nil)
	c.Params = gin.Params{{Key: "lock_id", Value: lockID.String()}}

	h.Cancel(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

// --- Compliance Handler Tests ---

func TestGetSnapshot_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mocks.NewMockComplianceService(ctrl)
	h := NewComplianceHandler(svc)

	userID := uuid.New()
	svc.EXPECT().Resolve(gomock.Any(), userID).Return(domain.ComplianceSnapshot{
		UserID:      userID.String(),
		KYCState:    domain.KYCStateApproved,
		WalletState: domain.WalletStateActive,
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/users/"+userID.String()+"/compliance", nil)
	c.Params = gin.Params{{Key: "id", Value: userID.String()}}

	h.GetSnapshot(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, true, data["in_good_standing"])
	assert.Nil(t, data["unmet_reasons"])
}

func TestGetSnapshot_NotInGoodStanding(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mocks.NewMockComplianceService(ctrl)
	h := NewComplianceHandler(svc)

	userID := uuid.New()
	svc.EXPECT().Resolve(gomock.Any(), userID).Return(domain.ComplianceSnapshot{
		UserID:        userID.String(),
		KYCState:      domain.KYCStatePending,
		WalletState:   domain.WalletStateActive,
		IsBlacklisted: true,
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/users/"+userID.String()+"/compliance", nil)
	c.Params = gin.Params{{Key: "id", Value: userID.String()}}

	h.GetSnapshot(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, false, data["in_good_standing"])
	reasons := data["unmet_reasons"].([]interface{})
	assert.Contains(t, reasons, "user is blacklisted")
}

// --- Admin Handler Tests ---

func TestApplyOverride_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	guard := mocks.NewMockContractGuard(ctrl)
	h := NewAdminHandler(guard)

	subID := uuid.New()
	actorID := uuid.New()
	override := &domain.ContractOverride{
		ID:             uuid.New(),
		SubscriptionID: subID,
		Field:          "monthly_amount_paise",
		OldValue:       "500000",
		NewValue:       "450000",
		ActorID:        actorID,
		Reason:         "retention discount",
		Status:         domain.OverrideStatusApplied,
		CreatedAt:      time.Now().UTC(),
	}

	guard.EXPECT().
		ApplyOverride(gomock.Any(), ports.OverrideRequest{
			SubscriptionID: subID,
			Field:          "monthly_amount_paise",
			NewValue:       "450000",
			Reason:         "retention discount",
		}, gomock.Any()).
		DoAndReturn(func(_ any, _ ports.OverrideRequest, meta ports.AuditMeta) (*domain.ContractOverride, error) {
			require.NotNil(t, meta.ActorID)
			assert.Equal(t, actorID, *meta.ActorID)
			return override, nil
		})

	c, w := newJSONContext(t, http.MethodPost, "/api/v1/admin/overrides", dto.OverrideRequest{
		SubscriptionID: subID.String(),
		Field:          "monthly_amount_paise",
		NewValue:       "450000",
		Reason:         "  retention discount ",
	})
	c.Set(middleware.CtxAdminID, actorID)

	h.ApplyOverride(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "APPLIED", data["status"])
	assert.Equal(t, "500000", data["old_value"])
}

func TestApplyOverride_SchemaViolation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	guard := mocks.NewMockContractGuard(ctrl)
	h := NewAdminHandler(guard)

	subID := uuid.New()
	guard.EXPECT().
		ApplyOverride(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, apperror.ErrOverrideSchemaViolation([]string{`field "plan_id" is not overridable`}))

	c, w := newJSONContext(t, http.MethodPost, "/api/v1/admin/overrides", dto.OverrideRequest{
		SubscriptionID: subID.String(),
		Field:          "plan_id",
		NewValue:       uuid.NewString(),
		Reason:         "attempt",
	})
	c.Set(middleware.CtxAdminID, uuid.New())

	h.ApplyOverride(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "OVERRIDE_SCHEMA_VIOLATION", resp["error_code"])
}

func TestUpdateTerms_FrozenFieldRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	guard := mocks.NewMockContractGuard(ctrl)
	h := NewAdminHandler(guard)

	subID := uuid.New()
	planID := uuid.New()
	guard.EXPECT().
		GuardTermsUpdate(gomock.Any(), subID, gomock.Any(), gomock.Any()).
		Return(apperror.ErrSnapshotImmutabilityViolation(subID.String(), []string{"monthly_amount_paise"}))

	c, w := newJSONContext(t, http.MethodPut, "/api/v1/admin/subscriptions/"+subID.String()+"/terms",
		dto.TermsUpdateRequest{
			PlanID:             planID.String(),
			MonthlyAmountPaise: 999999,
			TotalCycles:        12,
			StartDate:          "2026-01-01T00:00:00Z",
		})
	c.Params = gin.Params{{Key: "id", Value: subID.String()}}

	h.UpdateTerms(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "SNAPSHOT_IMMUTABILITY_VIOLATION", resp["error_code"])
}

func TestUpdateTerms_NoFrozenChange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	guard := mocks.NewMockContractGuard(ctrl)
	h := NewAdminHandler(guard)

	subID := uuid.New()
	guard.EXPECT().
		GuardTermsUpdate(gomock.Any(), subID, gomock.Any(), gomock.Any()).
		Return(nil)

	c, w := newJSONContext(t, http.MethodPut, "/api/v1/admin/subscriptions/"+subID.String()+"/terms",
		dto.TermsUpdateRequest{
			PlanID:             uuid.NewString(),
			MonthlyAmountPaise: 500000,
			TotalCycles:        12,
			StartDate:          "2026-01-01T00:00:00Z",
		})
	c.Params = gin.Params{{Key: "id", Value: subID.String()}}

	h.UpdateTerms(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestVerifyIntegrity_Tampered(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	guard := mocks.NewMockContractGuard(ctrl)
	h := NewAdminHandler(guard)

	subID := uuid.New()
	guard.EXPECT().
		VerifyIntegrity(gomock.Any(), subID).
		Return(apperror.ErrContractIntegrity(subID.String(), nil))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/admin/subscriptions/"+subID.String()+"/verify", nil)
	c.Params = gin.Params{{Key: "id", Value: subID.String()}}

	h.VerifyIntegrity(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

// --- Health Handler Tests ---

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Ping(ctx context.Context) error { return s.err }
func (s stubChecker) Name() string                   { return s.name }

func TestHealthCheck_AllHealthy(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	HealthCheck(stubChecker{name: "postgres"}, stubChecker{name: "redis"})(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
}

func TestHealthCheck_Degraded(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	HealthCheck(
		stubChecker{name: "postgres"},
		stubChecker{name: "redis", err: errors.New("connection refused")},
	)(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp["status"])
}
