package apperror

import (
	"fmt"
	"net/http"
)

// Severity classifies how an error must be handled at the boundary.
type Severity string

const (
	// SeverityBusiness marks recoverable business-rule violations; mapped to
	// client errors with full, actionable context.
	SeverityBusiness Severity = "BUSINESS"
	// SeverityCritical marks contract/tamper class failures. Full detail is
	// written to the audit channel; the client sees a generic message.
	SeverityCritical Severity = "CRITICAL"
)

// AppError is a structured error with a stable code, JSON-serializable
// context and an HTTP mapping.
type AppError struct {
	Code       string         `json:"error_code"`
	Message    string         `json:"message"`
	Severity   Severity       `json:"-"`
	HTTPStatus int            `json:"-"`
	Context    map[string]any `json:"context,omitempty"`
	Err        error          `json:"-"` // wrapped internal error, not exposed to clients
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithContext attaches a context key/value and returns the error.
func (e *AppError) WithContext(key string, value any) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// New creates a business-severity AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		Severity:   SeverityBusiness,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		Severity:   SeverityBusiness,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Ledger & Wallet ----

// ErrInsufficientBalance reports a debit that would take the balance
// negative. Carries available vs requested so the client message is
// actionable.
func ErrInsufficientBalance(availablePaise, requestedPaise int64) *AppError {
	e := New("INSUFFICIENT_BALANCE",
		fmt.Sprintf("insufficient balance: available %d paise, requested %d paise", availablePaise, requestedPaise),
		http.StatusUnprocessableEntity)
	return e.WithContext("available_paise", availablePaise).
		WithContext("requested_paise", requestedPaise)
}

func ErrZeroAmount() *AppError {
	return New("ZERO_AMOUNT", "ledger entry amount must be non-zero", http.StatusBadRequest)
}

func ErrWalletNotFound(walletID string) *AppError {
	return New("WALLET_NOT_FOUND", "wallet not found", http.StatusNotFound).
		WithContext("wallet_id", walletID)
}

// ---- Fund Locks ----

func ErrLockExceedsAvailable(availablePaise, requestedPaise int64) *AppError {
	e := New("LOCK_EXCEEDS_AVAILABLE",
		fmt.Sprintf("fund lock of %d paise exceeds available balance of %d paise", requestedPaise, availablePaise),
		http.StatusUnprocessableEntity)
	return e.WithContext("available_paise", availablePaise).
		WithContext("requested_paise", requestedPaise)
}

func ErrLockNotFound(lockID string) *AppError {
	return New("LOCK_NOT_FOUND", "fund lock not found", http.StatusNotFound).
		WithContext("lock_id", lockID)
}

// ---- Compliance ----

// ErrIneligibleAction reports a failed good-standing gate. The snapshot and
// unmet reasons ride along so the boundary can build a structured response.
func ErrIneligibleAction(action string, snapshot any, reasons []string) *AppError {
	return New("INELIGIBLE_ACTION",
		fmt.Sprintf("user is not eligible for action %q", action),
		http.StatusForbidden).
		WithContext("action", action).
		WithContext("snapshot", snapshot).
		WithContext("unmet_reasons", reasons)
}

func ErrUserNotFound(userID string) *AppError {
	return New("USER_NOT_FOUND", "user not found", http.StatusNotFound).
		WithContext("user_id", userID)
}

func ErrSubscriptionNotFound(ref string) *AppError {
	return New("SUBSCRIPTION_NOT_FOUND", "subscription not found", http.StatusNotFound).
		WithContext("subscription_reference", ref)
}

// ---- Withdrawals ----

func ErrDailyWithdrawalLimit(limitPaise, attemptedPaise int64) *AppError {
	return New("DAILY_WITHDRAWAL_LIMIT",
		fmt.Sprintf("daily withdrawal limit of %d paise exceeded", limitPaise),
		http.StatusUnprocessableEntity).
		WithContext("limit_paise", limitPaise).
		WithContext("attempted_paise", attemptedPaise)
}

// ---- Contract Guard ----
// Critical-severity errors deliberately carry a generic client message;
// full detail lives in Context and goes to the audit channel only.

func ErrPaymentAmountMismatch(subscriptionID string, expectedPaise, webhookPaise int64) *AppError {
	e := &AppError{
		Code:       "PAYMENT_AMOUNT_MISMATCH",
		Message:    "payment verification failed, incident logged",
		Severity:   SeverityCritical,
		HTTPStatus: http.StatusConflict,
	}
	return e.WithContext("subscription_id", subscriptionID).
		WithContext("expected_paise", expectedPaise).
		WithContext("webhook_paise", webhookPaise)
}

func ErrSnapshotImmutabilityViolation(subscriptionID string, violatedFields []string) *AppError {
	e := &AppError{
		Code:       "SNAPSHOT_IMMUTABILITY_VIOLATION",
		Message:    "verification failed, incident logged",
		Severity:   SeverityCritical,
		HTTPStatus: http.StatusConflict,
	}
	return e.WithContext("subscription_id", subscriptionID).
		WithContext("violated_fields", violatedFields)
}

func ErrContractIntegrity(subscriptionID string, err error) *AppError {
	e := &AppError{
		Code:       "CONTRACT_INTEGRITY",
		Message:    "verification failed, incident logged",
		Severity:   SeverityCritical,
		HTTPStatus: http.StatusConflict,
		Err:        err,
	}
	return e.WithContext("subscription_id", subscriptionID)
}

// ErrOverrideSchemaViolation is the recoverable, client-error member of the
// contract family: malformed admin override input, not suspected tampering.
func ErrOverrideSchemaViolation(issues []string) *AppError {
	return New("OVERRIDE_SCHEMA_VIOLATION", "override payload failed schema validation", http.StatusBadRequest).
		WithContext("issues", issues)
}

// ---- Auth ----

func ErrInvalidToken() *AppError {
	return New("AUTH_INVALID_TOKEN", "invalid or expired token", http.StatusUnauthorized)
}

func ErrForbidden() *AppError {
	return New("AUTH_FORBIDDEN", "insufficient privileges", http.StatusForbidden)
}

// ---- System & Infrastructure ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a request-validation error.
func Validation(message string) *AppError {
	return New("VALIDATION_FAILED", message, http.StatusBadRequest)
}

// IsCritical reports whether err is a critical-severity AppError.
func IsCritical(err error) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Severity == SeverityCritical
}
