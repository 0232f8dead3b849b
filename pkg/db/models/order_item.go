package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sbaral/bookpasal-backend/pkg/enums"
)

// OrderItem is a line snapshotted from the cart at submission; it never tracks
// the live cart afterwards.
type OrderItem struct {
	ID         uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID    uuid.UUID        `gorm:"column:order_id;type:uuid;not null;index"`
	BookID     string           `gorm:"column:book_id;type:text;not null"`
	Format     enums.BookFormat `gorm:"column:format;type:text;not null"`
	Title      string           `gorm:"column:title;type:text;not null"`
	Author     string           `gorm:"column:author;type:text;not null"`
	CoverImage *string          `gorm:"column:cover_image;type:text"`
	UnitPrice  decimal.Decimal  `gorm:"column:unit_price;type:numeric(12,2);not null"`
	Quantity   int              `gorm:"column:quantity;not null"`
	LineTotal  decimal.Decimal  `gorm:"column:line_total;type:numeric(12,2);not null"`
	CreatedAt  time.Time        `gorm:"column:created_at;autoCreateTime"`
}
