package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// TokenTransactionService adds the caller-scoped listing to token transactions.
type TokenTransactionService struct {
	*Resource[TokenTransaction]
}

// ListSelf lists the authenticated user's token transactions.
func (s *TokenTransactionService) ListSelf(ctx context.Context, params ListParams) (ListResult[TokenTransaction], error) {
	return s.list(ctx, s.path+"/self", params.Values())
}

// CreditsTransactionService adds the caller-scoped listing to credits transactions.
type CreditsTransactionService struct {
	*Resource[CreditsTransaction]
}

// ListSelf lists the authenticated user's credits transactions.
func (s *CreditsTransactionService) ListSelf(ctx context.Context, params ListParams) (ListResult[CreditsTransaction], error) {
	return s.list(ctx, s.path+"/self", params.Values())
}

// UserWalletService adds the caller wallet lookup.
type UserWalletService struct {
	*Resource[UserWallet]
}

// Self returns the authenticated user's wallet.
func (s *UserWalletService) Self(ctx context.Context) (UserWallet, error) {
	return s.single(ctx, http.MethodGet, s.path+"/self", nil)
}

// PaymentTransactionService adds checkout initiation.
type PaymentTransactionService struct {
	*Resource[PaymentTransaction]
}

// InitiatePaymentRequest starts a checkout for a package/plan.
type InitiatePaymentRequest struct {
	PackageID       string  `json:"package_id,omitempty"`
	PlanID          string  `json:"plan_id,omitempty"`
	PaymentMethodID string  `json:"payment_method_id"`
	CouponCode      string  `json:"coupon_code,omitempty"`
	Amount          float64 `json:"amount,omitempty"`
	Currency        string  `json:"currency,omitempty"`
	ReturnURL       string  `json:"return_url,omitempty"`
	// IdempotencyKey is sent as a header; generated when empty.
	IdempotencyKey string `json:"-"`
}

// InitiatePaymentResult is the checkout handle returned by the backend.
type InitiatePaymentResult struct {
	TransactionID string  `json:"transaction_id"`
	CheckoutURL   string  `json:"checkout_url"`
	Status        string  `json:"status"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
}

// Initiate starts a payment transaction.
func (s *PaymentTransactionService) Initiate(ctx context.Context, req InitiatePaymentRequest) (InitiatePaymentResult, error) {
	key := strings.TrimSpace(req.IdempotencyKey)
	if key == "" {
		key = uuid.NewString()
	}
	env, err := call[InitiatePaymentResult](ctx, s.client, request{
		method:  http.MethodPost,
		path:    s.path + "/initiate",
		payload: req,
		headers: map[string]string{"Idempotency-Key": key},
	})
	if err != nil {
		return InitiatePaymentResult{}, err
	}
	return env.Data, nil
}
