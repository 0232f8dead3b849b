package notifications

import (
	"context"

	"gorm.io/gorm"

	"github.com/sbaral/bookpasal-backend/pkg/db/models"
)

// FailureRecorder persists undeliverable notifications for operator replay.
type FailureRecorder interface {
	Record(ctx context.Context, failure *models.NotificationFailure) error
}

type failureRepository struct {
	db *gorm.DB
}

// NewFailureRepository builds the durable failure log backed by the orders DB.
func NewFailureRepository(db *gorm.DB) FailureRecorder {
	return &failureRepository{db: db}
}

func (r *failureRepository) Record(ctx context.Context, failure *models.NotificationFailure) error {
	return r.db.WithContext(ctx).Create(failure).Error
}
