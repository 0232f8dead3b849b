package orders

import (
	"context"
	stdErrors "errors"

	"gorm.io/gorm"

	"github.com/sbaral/bookpasal-backend/pkg/db/models"
	"github.com/sbaral/bookpasal-backend/pkg/enums"
	"github.com/sbaral/bookpasal-backend/pkg/errors"
	"github.com/sbaral/bookpasal-backend/pkg/logger"
	"github.com/sbaral/bookpasal-backend/pkg/metrics"
)

// TxRunner executes a function inside a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// StatusNotifier receives a fully-updated order after a status transition.
type StatusNotifier interface {
	OnStatusChange(ctx context.Context, order *models.Order) error
}

// Service owns order persistence and the admin status lifecycle.
type Service interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	GetByNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	UpdateStatus(ctx context.Context, orderNumber string, next, previous enums.OrderStatus, notes *string) (*models.Order, error)
}

type service struct {
	repo     Repository
	tx       TxRunner
	notifier StatusNotifier
	metrics  *metrics.StorefrontMetrics
	logger   *logger.Logger
}

// NewService wires the order service. The notifier and metrics are optional.
func NewService(repo Repository, tx TxRunner, notifier StatusNotifier, m *metrics.StorefrontMetrics, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, stdErrors.New("orders: repository is required")
	}
	if tx == nil {
		return nil, stdErrors.New("orders: tx runner is required")
	}
	return &service{repo: repo, tx: tx, notifier: notifier, metrics: m, logger: logg}, nil
}

// Create persists the order and its items in a single transaction.
func (s *service) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if order == nil {
		return nil, errors.New(errors.CodeInternal, "order payload is nil")
	}
	var created *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		var txErr error
		created, txErr = s.repo.WithTx(tx).Create(ctx, order)
		return txErr
	})
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "persisting order")
	}
	s.metrics.IncOrderCreated(created.RequiresShipping)
	if s.logger != nil {
		s.logger.Info(s.logger.WithOrderNumber(ctx, created.OrderNumber), "order created")
	}
	return created, nil
}

// GetByNumber loads an order by its public number.
func (s *service) GetByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	if orderNumber == "" {
		return nil, errors.New(errors.CodeValidation, "order number is required")
	}
	order, err := s.repo.FindByNumber(ctx, orderNumber)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "order not found")
		}
		return nil, errors.Wrap(errors.CodeDependency, err, "loading order")
	}
	return order, nil
}

// UpdateStatus applies an admin transition guarded by the status the caller
// last observed. A stale guard is rejected so two admins cannot silently
// overwrite each other.
func (s *service) UpdateStatus(ctx context.Context, orderNumber string, next, previous enums.OrderStatus, notes *string) (*models.Order, error) {
	if !next.IsValid() {
		return nil, errors.New(errors.CodeValidation, "invalid target status")
	}
	if !previous.IsValid() {
		return nil, errors.New(errors.CodeValidation, "invalid previous status")
	}

	order, err := s.GetByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if order.Status != previous {
		return nil, errors.New(errors.CodeStateConflict, "order status changed since last read").
			WithDetails(map[string]string{
				"expected": string(previous),
				"actual":   string(order.Status),
			})
	}
	if order.Status == next {
		return order, nil
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).UpdateStatus(ctx, orderNumber, next, notes)
	})
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "updating order status")
	}

	order.Status = next
	if notes != nil {
		order.Notes = notes
	}
	s.metrics.IncStatusUpdate(string(next))

	if s.notifier != nil {
		if notifyErr := s.notifier.OnStatusChange(ctx, order); notifyErr != nil && s.logger != nil {
			s.logger.Error(s.logger.WithOrderNumber(ctx, orderNumber), "status notification failed", notifyErr)
		}
	}
	return order, nil
}
