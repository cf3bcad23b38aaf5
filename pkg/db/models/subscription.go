package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	dbtypes "github.com/opsdeskhq/opsdesk-backend/pkg/db/types"
	"github.com/opsdeskhq/opsdesk-backend/pkg/enums"
)

// Subscription is one SaaS subscription owned by a user. Cost is stored at
// currency-minor-unit precision; RenewalDate is a calendar date, not a
// timestamp.
type Subscription struct {
	ID           uuid.UUID                `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID       uuid.UUID                `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Name         string                   `gorm:"column:name;not null" json:"name"`
	Cost         decimal.Decimal          `gorm:"column:cost;type:numeric(12,2);not null" json:"cost"`
	BillingCycle enums.BillingCycle       `gorm:"column:billing_cycle;not null" json:"billing_cycle"`
	RenewalDate  dbtypes.Date             `gorm:"column:renewal_date;not null" json:"renewal_date"`
	Status       enums.SubscriptionStatus `gorm:"column:status;not null;default:'active'" json:"status"`
	Owner        *string                  `gorm:"column:owner" json:"owner,omitempty"`
	Team         *string                  `gorm:"column:team" json:"team,omitempty"`
	Category     *string                  `gorm:"column:category" json:"category,omitempty"`
	InvoiceURL   *string                  `gorm:"column:invoice_url" json:"invoice_url,omitempty"`
	CreatedAt    time.Time                `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time                `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
