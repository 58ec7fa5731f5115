package gateway

import "context"

// ChargeRequest describes a payment charge. Reference is supplied by
// the caller so a real adapter could deduplicate repeated charges.
type ChargeRequest struct {
	Reference string
	UserID    string
	Amount    float64
	Currency  string
	Method    string
	Details   string
}

// ChargeResponse is the outcome of a charge attempt
type ChargeResponse struct {
	Success       bool
	TransactionID string
	Status        string
	FailureReason string
}

// PaymentGateway processes payment charges for bookings. Implementations
// must honor context cancellation so a charge cannot outlive the
// reservation deadline.
type PaymentGateway interface {
	Charge(ctx context.Context, req *ChargeRequest) (*ChargeResponse, error)
	Name() string
}
