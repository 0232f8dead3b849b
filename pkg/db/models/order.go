package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sbaral/bookpasal-backend/pkg/enums"
	"github.com/sbaral/bookpasal-backend/pkg/types"
)

// Order is the immutable checkout snapshot. Only Status and Notes change
// after creation, through admin status updates.
type Order struct {
	ID               uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber      string              `gorm:"column:order_number;type:text;not null;uniqueIndex"`
	Email            string              `gorm:"column:email;type:text;not null"`
	FirstName        string              `gorm:"column:first_name;type:text;not null"`
	LastName         string              `gorm:"column:last_name;type:text;not null"`
	Phone            string              `gorm:"column:phone;type:text;not null"`
	ShippingAddress  *types.Address      `gorm:"column:shipping_address;type:jsonb;serializer:json"`
	RequiresShipping bool                `gorm:"column:requires_shipping;not null;default:false"`
	PaymentMethod    enums.PaymentMethod `gorm:"column:payment_method;type:text;not null"`
	TransactionRef   string              `gorm:"column:transaction_ref;type:text;not null"`
	Currency         enums.Currency      `gorm:"column:currency;type:text;not null;default:'NPR'"`
	Subtotal         decimal.Decimal     `gorm:"column:subtotal;type:numeric(12,2);not null"`
	ShippingCost     decimal.Decimal     `gorm:"column:shipping_cost;type:numeric(12,2);not null;default:0"`
	GrandTotal       decimal.Decimal     `gorm:"column:grand_total;type:numeric(12,2);not null"`
	Status           enums.OrderStatus   `gorm:"column:status;type:text;not null;default:'pending'"`
	Notes            *string             `gorm:"column:notes;type:text"`
	Items            []OrderItem         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// CustomerName joins the contact name fields for mail rendering.
func (o Order) CustomerName() string {
	return o.FirstName + " " + o.LastName
}

// PrimaryItem returns the first snapshotted line, if any.
func (o Order) PrimaryItem() *OrderItem {
	if len(o.Items) == 0 {
		return nil
	}
	return &o.Items[0]
}
