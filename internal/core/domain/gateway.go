package domain

import "github.com/google/uuid"

// GatewayPaymentEvent is a verified, parsed payment confirmation handed to
// the engine by the gateway integration. Signature verification happened
// upstream; by the time this struct exists the event is authentic but its
// amount is still untrusted and must pass the contract guard.
type GatewayPaymentEvent struct {
	GatewayPaymentID string    `json:"gateway_payment_id"`
	AmountPaise      int64     `json:"amount_paise"`
	Currency         string    `json:"currency"`
	SubscriptionRef  uuid.UUID `json:"subscription_reference"`
}
