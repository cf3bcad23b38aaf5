package subscriptions

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/opsdeskhq/opsdesk-backend/pkg/db/models"
	dbtypes "github.com/opsdeskhq/opsdesk-backend/pkg/db/types"
	"github.com/opsdeskhq/opsdesk-backend/pkg/enums"
)

// CreateSubscriptionRequest is the payload for adding a subscription.
type CreateSubscriptionRequest struct {
	Name         string  `json:"name" validate:"required,max=200"`
	Cost         string  `json:"cost" validate:"required"`
	BillingCycle string  `json:"billing_cycle" validate:"required,oneof=monthly annual"`
	RenewalDate  string  `json:"renewal_date" validate:"required"`
	Status       string  `json:"status" validate:"omitempty,oneof=active trial cancelled"`
	Owner        *string `json:"owner,omitempty" validate:"omitempty,max=200"`
	Team         *string `json:"team,omitempty" validate:"omitempty,max=200"`
	Category     *string `json:"category,omitempty" validate:"omitempty,max=200"`
	InvoiceURL   *string `json:"invoice_url,omitempty" validate:"omitempty,url"`
}

// UpdateSubscriptionRequest mirrors the create payload for full replacement.
type UpdateSubscriptionRequest struct {
	Name         string  `json:"name" validate:"required,max=200"`
	Cost         string  `json:"cost" validate:"required"`
	BillingCycle string  `json:"billing_cycle" validate:"required,oneof=monthly annual"`
	RenewalDate  string  `json:"renewal_date" validate:"required"`
	Status       string  `json:"status" validate:"required,oneof=active trial cancelled"`
	Owner        *string `json:"owner,omitempty" validate:"omitempty,max=200"`
	Team         *string `json:"team,omitempty" validate:"omitempty,max=200"`
	Category     *string `json:"category,omitempty" validate:"omitempty,max=200"`
	InvoiceURL   *string `json:"invoice_url,omitempty" validate:"omitempty,url"`
}

// CreateSubscriptionDTO is the validated shape handed to the repository.
type CreateSubscriptionDTO struct {
	UserID       uuid.UUID
	Name         string
	Cost         decimal.Decimal
	BillingCycle enums.BillingCycle
	RenewalDate  dbtypes.Date
	Status       enums.SubscriptionStatus
	Owner        *string
	Team         *string
	Category     *string
	InvoiceURL   *string
}

func (c CreateSubscriptionDTO) ToModel() *models.Subscription {
	return &models.Subscription{
		UserID:       c.UserID,
		Name:         c.Name,
		Cost:         c.Cost,
		BillingCycle: c.BillingCycle,
		RenewalDate:  c.RenewalDate,
		Status:       c.Status,
		Owner:        c.Owner,
		Team:         c.Team,
		Category:     c.Category,
		InvoiceURL:   c.InvoiceURL,
	}
}

// ListFilter captures the query parameters applied to the in-memory list.
type ListFilter struct {
	Query        string
	Status       string
	BillingCycle string
	Category     string
}
