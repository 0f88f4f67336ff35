package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Config configures the backend REST client.
type Config struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	Timeout    time.Duration
	// RequestsPerSecond paces outgoing calls when > 0. Calls wait, they are never retried.
	RequestsPerSecond float64
	Burst             int
	Logger            *slog.Logger
}

// Client talks to the platform REST backend. One method call issues exactly one request.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger

	AiModels             *Resource[AiModel]
	BillingSettings      *Resource[BillingSetting]
	Coupons              *Resource[Coupon]
	CreditsProfits       *Resource[CreditsProfit]
	CreditsTransactions  *CreditsTransactionService
	CreditsUsages        *Resource[CreditsUsage]
	Events               *Resource[Event]
	Features             *Resource[Feature]
	FeaturePopups        *Resource[FeaturePopup]
	FeatureFeedbacks     *Resource[FeatureFeedback]
	FeatureUsageLogs     *Resource[FeatureUsageLog]
	Packages             *Resource[Package]
	PackagePlans         *Resource[PackagePlan]
	PackageTransactions  *Resource[PackageTransaction]
	PaymentMethods       *Resource[PaymentMethod]
	PaymentTransactions  *PaymentTransactionService
	Plans                *Resource[Plan]
	TokenProfits         *Resource[TokenProfit]
	TokenTransactions    *TokenTransactionService
	UserWallets          *UserWalletService
	Users                *Resource[User]
	Notifications        *Resource[Notification]
}

// New builds a client for the configured backend.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("api: base url is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("api: parse base url: %w", err)
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		client:  httpClient,
		logger:  logger.With("component", "api.client"),
	}
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	c.AiModels = NewResource[AiModel](c, "/api/ai-models")
	c.BillingSettings = NewResource[BillingSetting](c, "/api/billing-settings")
	c.Coupons = NewResource[Coupon](c, "/api/coupons")
	c.CreditsProfits = NewResource[CreditsProfit](c, "/api/credits-profits")
	c.CreditsTransactions = &CreditsTransactionService{Resource: NewResource[CreditsTransaction](c, "/api/credits-transactions")}
	c.CreditsUsages = NewResource[CreditsUsage](c, "/api/credits-usages")
	c.Events = NewResource[Event](c, "/api/events")
	c.Features = NewResource[Feature](c, "/api/features")
	c.FeaturePopups = NewResource[FeaturePopup](c, "/api/feature-popups")
	c.FeatureFeedbacks = NewResource[FeatureFeedback](c, "/api/feature-feedbacks")
	c.FeatureUsageLogs = NewResource[FeatureUsageLog](c, "/api/feature-usage-logs")
	c.Packages = NewResource[Package](c, "/api/packages")
	c.PackagePlans = NewResource[PackagePlan](c, "/api/package-plans")
	c.PackageTransactions = NewResource[PackageTransaction](c, "/api/package-transactions")
	c.PaymentMethods = NewResource[PaymentMethod](c, "/api/payment-methods")
	c.PaymentTransactions = &PaymentTransactionService{Resource: NewResource[PaymentTransaction](c, "/api/payment-transactions")}
	c.Plans = NewResource[Plan](c, "/api/plans")
	c.TokenProfits = NewResource[TokenProfit](c, "/api/token-profits")
	c.TokenTransactions = &TokenTransactionService{Resource: NewResource[TokenTransaction](c, "/api/token-transactions")}
	c.UserWallets = &UserWalletService{Resource: NewResource[UserWallet](c, "/api/user-wallets")}
	c.Users = NewResource[User](c, "/api/users")
	c.Notifications = NewResource[Notification](c, "/api/notifications")
	return c, nil
}

// ErrInvalidRequest is returned before any request is sent when the call arguments are incomplete.
var ErrInvalidRequest = errors.New("api: invalid request")

// Error is returned for non-2xx responses and envelopes with success=false.
type Error struct {
	StatusCode int
	Method     string
	Path       string
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: %s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("api: %s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

type request struct {
	method  string
	path    string
	query   url.Values
	payload any
	headers map[string]string
}

func call[T any](ctx context.Context, c *Client, req request) (Envelope[T], error) {
	var env Envelope[T]
	status, err := c.do(ctx, req, &env)
	if err != nil {
		return env, err
	}
	if status == http.StatusNoContent {
		return env, nil
	}
	if !env.Success {
		return env, &Error{StatusCode: status, Method: req.method, Path: req.path, Message: env.Message}
	}
	return env, nil
}

func (c *Client) do(ctx context.Context, req request, target any) (int, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return 0, fmt.Errorf("api: wait for rate limiter: %w", err)
		}
	}
	var body io.Reader
	if req.payload != nil {
		data, err := json.Marshal(req.payload)
		if err != nil {
			return 0, fmt.Errorf("api: encode payload: %w", err)
		}
		body = bytes.NewReader(data)
	}
	endpoint := c.baseURL + req.path
	if len(req.query) > 0 {
		endpoint += "?" + req.query.Encode()
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint, body)
	if err != nil {
		return 0, fmt.Errorf("api: build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("X-Request-ID", requestID)
	for key, value := range req.headers {
		httpReq.Header.Set(key, value)
	}

	started := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return 0, fmt.Errorf("api: http request: %w", err)
	}
	defer resp.Body.Close()
	c.logger.DebugContext(ctx, "backend call",
		"method", req.method,
		"path", req.path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(started),
	)

	if resp.StatusCode >= 300 {
		return resp.StatusCode, &Error{
			StatusCode: resp.StatusCode,
			Method:     req.method,
			Path:       req.path,
			Message:    errorMessage(resp.Body),
		}
	}
	if target == nil || resp.StatusCode == http.StatusNoContent {
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return resp.StatusCode, fmt.Errorf("api: decode response: %w", err)
	}
	return resp.StatusCode, nil
}

func errorMessage(r io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(r, 64<<10))
	var env struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &env); err == nil && env.Message != "" {
		return env.Message
	}
	return strings.TrimSpace(string(data))
}
