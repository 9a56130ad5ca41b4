package iface

import (
	"context"
	"fmt"
)

// Plan is a premium subscription plan
type Plan string

const (
	PlanMonthly  Plan = "monthly"
	PlanYearly   Plan = "yearly"
	PlanLifetime Plan = "lifetime"
)

// Plans lists the available plans in display order
var Plans = []Plan{PlanMonthly, PlanYearly, PlanLifetime}

// PayMethod is a payment provider
type PayMethod string

const (
	PayMethodVNPay  PayMethod = "vnpay"
	PayMethodMoMo   PayMethod = "momo"
	PayMethodStripe PayMethod = "stripe"
)

// PayMethods lists the available payment methods in display order
var PayMethods = []PayMethod{PayMethodVNPay, PayMethodMoMo, PayMethodStripe}

// ParsePlan validates a plan name
func ParsePlan(s string) (Plan, error) {
	for _, p := range Plans {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown plan %q (available: monthly, yearly, lifetime)", s)
}

// ParsePayMethod validates a payment method name
func ParsePayMethod(s string) (PayMethod, error) {
	for _, m := range PayMethods {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown payment method %q (available: vnpay, momo, stripe)", s)
}

// CheckoutInput represents the input for starting a premium purchase
type CheckoutInput struct {
	Plan   Plan
	Method PayMethod
	Coupon string
}

// Checkout is a pending payment order
type Checkout struct {
	OrderID    string `json:"order_id"`
	PaymentURL string `json:"payment_url"`
	ExpireAt   string `json:"expire_at,omitempty"`
}

// PaymentService defines the interface for premium purchases
type PaymentService interface {
	// CreateCheckout starts a payment and returns the provider URL to complete it
	CreateCheckout(ctx context.Context, input *CheckoutInput) (*Checkout, error)
}
