package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/smartchef/smartchef-cli/internal/api"
	iface "github.com/smartchef/smartchef-cli/internal/service/interface"
	"github.com/smartchef/smartchef-cli/internal/session"
)

// CheckoutPath is the premium checkout endpoint
const CheckoutPath = "/api/payments/checkout/"

// IdempotencyKeyHeader lets the backend recognize a replayed checkout
const IdempotencyKeyHeader = "Idempotency-Key"

// paymentService implements iface.PaymentService
type paymentService struct {
	session *session.Manager
	client  *api.Client
}

// NewPaymentService creates a new payment service
func NewPaymentService(sess *session.Manager, client *api.Client) iface.PaymentService {
	return &paymentService{
		session: sess,
		client:  client,
	}
}

type checkoutRequest struct {
	Plan   iface.Plan      `json:"plan"`
	Method iface.PayMethod `json:"method"`
	Coupon string          `json:"coupon,omitempty"`
}

// CreateCheckout starts a payment order
func (s *paymentService) CreateCheckout(ctx context.Context, input *iface.CheckoutInput) (*iface.Checkout, error) {
	if _, err := iface.ParsePlan(string(input.Plan)); err != nil {
		return nil, err
	}
	if _, err := iface.ParsePayMethod(string(input.Method)); err != nil {
		return nil, err
	}

	if err := requireSession(s.session); err != nil {
		return nil, err
	}

	req := &checkoutRequest{
		Plan:   input.Plan,
		Method: input.Method,
		Coupon: input.Coupon,
	}

	// The same key is reused if the request is replayed after a refresh
	var checkout iface.Checkout
	if err := s.client.Post(ctx, CheckoutPath, req, &checkout, api.WithHeader(IdempotencyKeyHeader, uuid.NewString())); err != nil {
		return nil, fmt.Errorf("failed to create checkout: %w", err)
	}

	if checkout.PaymentURL == "" {
		return nil, errors.New("failed to create checkout: no payment URL in response")
	}

	return &checkout, nil
}
