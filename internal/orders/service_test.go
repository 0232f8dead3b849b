package orders

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sbaral/bookpasal-backend/pkg/db/models"
	"github.com/sbaral/bookpasal-backend/pkg/enums"
	"github.com/sbaral/bookpasal-backend/pkg/errors"
)

type fakeRepo struct {
	byNumber map[string]*models.Order
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byNumber: map[string]*models.Order{}}
}

func (f *fakeRepo) WithTx(*gorm.DB) Repository { return f }

func (f *fakeRepo) Create(_ context.Context, order *models.Order) (*models.Order, error) {
	f.byNumber[order.OrderNumber] = order
	return order, nil
}

func (f *fakeRepo) FindByNumber(_ context.Context, orderNumber string) (*models.Order, error) {
	order, ok := f.byNumber[orderNumber]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *order
	return &copied, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, orderNumber string, status enums.OrderStatus, notes *string) error {
	order, ok := f.byNumber[orderNumber]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	order.Status = status
	if notes != nil {
		order.Notes = notes
	}
	return nil
}

type fakeTx struct{}

func (fakeTx) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error { return fn(nil) }

type fakeStatusNotifier struct {
	notified []enums.OrderStatus
}

func (f *fakeStatusNotifier) OnStatusChange(_ context.Context, order *models.Order) error {
	f.notified = append(f.notified, order.Status)
	return nil
}

func seedOrder(t *testing.T, repo *fakeRepo) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNumber: "BP17550000000003EF56G",
		Email:       "sita@example.com",
		FirstName:   "Sita",
		LastName:    "Sharma",
		Status:      enums.OrderStatusPending,
		GrandTotal:  decimal.RequireFromString("650.00"),
	}
	repo.byNumber[order.OrderNumber] = order
	return order
}

func TestGetByNumberNotFound(t *testing.T) {
	svc, err := NewService(newFakeRepo(), fakeTx{}, nil, nil, nil)
	require.NoError(t, err)

	_, err = svc.GetByNumber(context.Background(), "BP-missing")
	coded := errors.As(err)
	require.NotNil(t, coded)
	require.Equal(t, errors.CodeNotFound, coded.Code())
}

func TestUpdateStatusAppliesTransitionAndNotifies(t *testing.T) {
	repo := newFakeRepo()
	seeded := seedOrder(t, repo)
	notifier := &fakeStatusNotifier{}
	svc, err := NewService(repo, fakeTx{}, notifier, nil, nil)
	require.NoError(t, err)

	notes := "dispatched via Pathao"
	updated, err := svc.UpdateStatus(context.Background(), seeded.OrderNumber,
		enums.OrderStatusShipped, enums.OrderStatusPending, &notes)
	require.NoError(t, err)
	require.Equal(t, enums.OrderStatusShipped, updated.Status)
	require.Equal(t, enums.OrderStatusShipped, repo.byNumber[seeded.OrderNumber].Status)
	require.Equal(t, []enums.OrderStatus{enums.OrderStatusShipped}, notifier.notified)
}

func TestUpdateStatusRejectsStaleGuard(t *testing.T) {
	repo := newFakeRepo()
	seeded := seedOrder(t, repo)
	seeded.Status = enums.OrderStatusConfirmed
	notifier := &fakeStatusNotifier{}
	svc, err := NewService(repo, fakeTx{}, notifier, nil, nil)
	require.NoError(t, err)

	// The caller still believes the order is pending.
	_, err = svc.UpdateStatus(context.Background(), seeded.OrderNumber,
		enums.OrderStatusShipped, enums.OrderStatusPending, nil)
	coded := errors.As(err)
	require.NotNil(t, coded)
	require.Equal(t, errors.CodeStateConflict, coded.Code())
	require.Equal(t, enums.OrderStatusConfirmed, repo.byNumber[seeded.OrderNumber].Status)
	require.Empty(t, notifier.notified)
}

func TestUpdateStatusSameStatusIsNoOp(t *testing.T) {
	repo := newFakeRepo()
	seeded := seedOrder(t, repo)
	notifier := &fakeStatusNotifier{}
	svc, err := NewService(repo, fakeTx{}, notifier, nil, nil)
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), seeded.OrderNumber,
		enums.OrderStatusPending, enums.OrderStatusPending, nil)
	require.NoError(t, err)
	require.Equal(t, enums.OrderStatusPending, updated.Status)
	require.Empty(t, notifier.notified, "repeating the current status must not notify")
}

func TestUpdateStatusValidatesEnums(t *testing.T) {
	repo := newFakeRepo()
	seedOrder(t, repo)
	svc, err := NewService(repo, fakeTx{}, nil, nil, nil)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), "BP17550000000003EF56G",
		"archived", enums.OrderStatusPending, nil)
	coded := errors.As(err)
	require.NotNil(t, coded)
	require.Equal(t, errors.CodeValidation, coded.Code())
}
