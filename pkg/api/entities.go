package api

import "time"

// UserRef is the trimmed user object the backend embeds in related records.
type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AiModel is a billable AI model with per-token pricing.
type AiModel struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Provider         string    `json:"provider"`
	ModelID          string    `json:"model_id"`
	InputTokenPrice  float64   `json:"input_token_price"`
	OutputTokenPrice float64   `json:"output_token_price"`
	IsActive         bool      `json:"is_active"`
	IsDeleted        bool      `json:"is_deleted"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// BillingSetting holds platform pricing knobs.
type BillingSetting struct {
	ID                string    `json:"id"`
	Currency          string    `json:"currency"`
	CreditPrice       float64   `json:"credit_price"`
	TokenPrice        float64   `json:"token_price"`
	TaxRate           float64   `json:"tax_rate"`
	MinimumPurchase   float64   `json:"minimum_purchase"`
	FreeSignupCredits int       `json:"free_signup_credits"`
	IsActive          bool      `json:"is_active"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Coupon is a discount code.
type Coupon struct {
	ID            string     `json:"id"`
	Code          string     `json:"code"`
	DiscountType  string     `json:"discount_type"`
	DiscountValue float64    `json:"discount_value"`
	MaxUses       int        `json:"max_uses"`
	UsedCount     int        `json:"used_count"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	IsActive      bool       `json:"is_active"`
	IsDeleted     bool       `json:"is_deleted"`
	CreatedAt     time.Time  `json:"created_at"`
}

// CreditsProfit records margin on a credits spend.
type CreditsProfit struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	User      *UserRef  `json:"user,omitempty"`
	FeatureID string    `json:"feature_id"`
	Credits   float64   `json:"credits"`
	Cost      float64   `json:"cost"`
	Revenue   float64   `json:"revenue"`
	Profit    float64   `json:"profit"`
	CreatedAt time.Time `json:"created_at"`
}

// CreditsTransaction is a credits ledger movement.
type CreditsTransaction struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	User        *UserRef  `json:"user,omitempty"`
	Type        string    `json:"type"`
	Credits     float64   `json:"credits"`
	Amount      float64   `json:"amount"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreditsUsage is one metered feature invocation.
type CreditsUsage struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	User         *UserRef  `json:"user,omitempty"`
	FeatureID    string    `json:"feature_id"`
	AiModelID    string    `json:"ai_model_id"`
	ModelName    string    `json:"model_name"`
	InputTokens  int64     `json:"input_tokens"`
	OutputTokens int64     `json:"output_tokens"`
	Credits      float64   `json:"credits"`
	CreatedAt    time.Time `json:"created_at"`
}

// Event is an audit/analytics event emitted by the platform.
type Event struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Type      string         `json:"type"`
	UserID    string         `json:"user_id"`
	Source    string         `json:"source"`
	Payload   map[string]any `json:"payload,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// Feature is a credit-consuming product capability.
type Feature struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Credits     float64   `json:"credits"`
	IsActive    bool      `json:"is_active"`
	IsDeleted   bool      `json:"is_deleted"`
	CreatedAt   time.Time `json:"created_at"`
}

// FeaturePopup announces a feature in the product UI.
type FeaturePopup struct {
	ID        string     `json:"id"`
	FeatureID string     `json:"feature_id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Status    string     `json:"status"`
	StartsAt  *time.Time `json:"starts_at,omitempty"`
	EndsAt    *time.Time `json:"ends_at,omitempty"`
	Views     int64      `json:"views"`
	Clicks    int64      `json:"clicks"`
	IsDeleted bool       `json:"is_deleted"`
	CreatedAt time.Time  `json:"created_at"`
}

// FeatureFeedback is a user rating for a feature.
type FeatureFeedback struct {
	ID        string    `json:"id"`
	FeatureID string    `json:"feature_id"`
	UserID    string    `json:"user_id"`
	User      *UserRef  `json:"user,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// FeatureUsageLog records a single feature execution.
type FeatureUsageLog struct {
	ID         string    `json:"id"`
	FeatureID  string    `json:"feature_id"`
	UserID     string    `json:"user_id"`
	Status     string    `json:"status"`
	DurationMs int64     `json:"duration_ms"`
	Credits    float64   `json:"credits"`
	CreatedAt  time.Time `json:"created_at"`
}

// Package is a purchasable credits bundle.
type Package struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Credits      float64   `json:"credits"`
	Price        float64   `json:"price"`
	Currency     string    `json:"currency"`
	DurationDays int       `json:"duration_days"`
	IsActive     bool      `json:"is_active"`
	IsPopular    bool      `json:"is_popular"`
	IsDeleted    bool      `json:"is_deleted"`
	CreatedAt    time.Time `json:"created_at"`
}

// PackagePlan prices a package under a plan.
type PackagePlan struct {
	ID        string    `json:"id"`
	PackageID string    `json:"package_id"`
	PlanID    string    `json:"plan_id"`
	Price     float64   `json:"price"`
	Credits   float64   `json:"credits"`
	IsActive  bool      `json:"is_active"`
	IsDeleted bool      `json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
}

// PackageTransaction is a package purchase.
type PackageTransaction struct {
	ID                   string    `json:"id"`
	UserID               string    `json:"user_id"`
	User                 *UserRef  `json:"user,omitempty"`
	PackageID            string    `json:"package_id"`
	PlanID               string    `json:"plan_id"`
	PaymentTransactionID string    `json:"payment_transaction_id"`
	Amount               float64   `json:"amount"`
	Credits              float64   `json:"credits"`
	Status               string    `json:"status"`
	CreatedAt            time.Time `json:"created_at"`
}

// PaymentMethod is a configured payment gateway option.
type PaymentMethod struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Provider  string    `json:"provider"`
	Type      string    `json:"type"`
	Currency  string    `json:"currency"`
	IsActive  bool      `json:"is_active"`
	IsDefault bool      `json:"is_default"`
	IsDeleted bool      `json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
}

// PaymentTransaction is a gateway payment.
type PaymentTransaction struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	User            *UserRef  `json:"user,omitempty"`
	PaymentMethodID string    `json:"payment_method_id"`
	Amount          float64   `json:"amount"`
	Currency        string    `json:"currency"`
	Status          string    `json:"status"`
	Gateway         string    `json:"gateway"`
	Reference       string    `json:"reference"`
	CreatedAt       time.Time `json:"created_at"`
}

// Plan is a subscription plan.
type Plan struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Interval     string    `json:"interval"`
	DurationDays int       `json:"duration_days"`
	Price        float64   `json:"price"`
	Currency     string    `json:"currency"`
	IsActive     bool      `json:"is_active"`
	IsDeleted    bool      `json:"is_deleted"`
	CreatedAt    time.Time `json:"created_at"`
}

// TokenProfit records margin on token consumption.
type TokenProfit struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	AiModelID    string    `json:"ai_model_id"`
	ModelName    string    `json:"model_name"`
	InputTokens  int64     `json:"input_tokens"`
	OutputTokens int64     `json:"output_tokens"`
	Cost         float64   `json:"cost"`
	Revenue      float64   `json:"revenue"`
	Profit       float64   `json:"profit"`
	CreatedAt    time.Time `json:"created_at"`
}

// TokenTransaction is a token ledger movement.
type TokenTransaction struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	User      *UserRef  `json:"user,omitempty"`
	Type      string    `json:"type"`
	Tokens    int64     `json:"tokens"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// UserWallet is a user's credits/tokens balance.
type UserWallet struct {
	ID                    string     `json:"id"`
	UserID                string     `json:"user_id"`
	User                  *UserRef   `json:"user,omitempty"`
	Credits               float64    `json:"credits"`
	Tokens                int64      `json:"tokens"`
	TotalCreditsPurchased float64    `json:"total_credits_purchased"`
	TotalCreditsUsed      float64    `json:"total_credits_used"`
	ExpiresAt             *time.Time `json:"expires_at,omitempty"`
	IsActive              bool       `json:"is_active"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// User is a platform account.
type User struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Status     string    `json:"status"`
	IsVerified bool      `json:"is_verified"`
	IsDeleted  bool      `json:"is_deleted"`
	CreatedAt  time.Time `json:"created_at"`
}

// Notification is a message delivered to a user.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
