package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/sbaral/bookpasal-backend/pkg/enums"
)

// NotificationFailure is the durable log row written when an outbound email
// cannot be delivered. Orders stay committed; operators replay from here.
type NotificationFailure struct {
	ID          uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber string                 `gorm:"column:order_number;type:text;not null;index"`
	Kind        enums.NotificationKind `gorm:"column:kind;type:text;not null"`
	Recipients  pq.StringArray         `gorm:"column:recipients;type:text[]"`
	Subject     string                 `gorm:"column:subject;type:text;not null"`
	Reason      string                 `gorm:"column:reason;type:text;not null"`
	CreatedAt   time.Time              `gorm:"column:created_at;autoCreateTime"`
}
