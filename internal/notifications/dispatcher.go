package notifications

import (
	"context"
	stdErrors "errors"
	"sync"

	"go.uber.org/multierr"

	"github.com/sbaral/bookpasal-backend/pkg/db/models"
	"github.com/sbaral/bookpasal-backend/pkg/enums"
	"github.com/sbaral/bookpasal-backend/pkg/logger"
	"github.com/sbaral/bookpasal-backend/pkg/mail"
	"github.com/sbaral/bookpasal-backend/pkg/metrics"
)

// Mailer delivers one rendered message and returns a provider id.
type Mailer interface {
	Send(ctx context.Context, msg mail.Message) (string, error)
}

// Dispatcher fans order events out to email. Delivery is best effort: a
// failed send is logged and recorded, never propagated as an order failure.
type Dispatcher struct {
	mailer   Mailer
	renderer *Renderer
	failures FailureRecorder
	metrics  *metrics.StorefrontMetrics
	logger   *logger.Logger
}

// NewDispatcher wires the notification dispatcher. Failures recorder, metrics
// and logger are optional.
func NewDispatcher(mailer Mailer, renderer *Renderer, failures FailureRecorder, m *metrics.StorefrontMetrics, logg *logger.Logger) (*Dispatcher, error) {
	if mailer == nil {
		return nil, stdErrors.New("notifications: mailer is required")
	}
	if renderer == nil {
		return nil, stdErrors.New("notifications: renderer is required")
	}
	return &Dispatcher{
		mailer:   mailer,
		renderer: renderer,
		failures: failures,
		metrics:  m,
		logger:   logg,
	}, nil
}

// OnOrderCreated sends the customer confirmation and the admin alert. Both
// sends run concurrently and both are attempted even if one fails; the
// combined error reports every failed leg.
func (d *Dispatcher) OnOrderCreated(ctx context.Context, order *models.Order) error {
	confirmation := d.renderer.CustomerConfirmation(order)
	alert := d.renderer.AdminAlert(order)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		combined error
	)
	send := func(kind enums.NotificationKind, msg mail.Message) {
		defer wg.Done()
		if err := d.deliver(ctx, order.OrderNumber, kind, msg); err != nil {
			mu.Lock()
			combined = multierr.Append(combined, err)
			mu.Unlock()
		}
	}

	wg.Add(2)
	go send(enums.NotificationKindOrderConfirmation, confirmation)
	go send(enums.NotificationKindAdminAlert, alert)
	wg.Wait()

	return combined
}

// OnStatusChange sends the customer lifecycle email for statuses that notify.
func (d *Dispatcher) OnStatusChange(ctx context.Context, order *models.Order) error {
	if !order.Status.NotifiesCustomer() {
		return nil
	}
	msg := d.renderer.StatusUpdate(order)
	return d.deliver(ctx, order.OrderNumber, enums.NotificationKindStatusUpdate, msg)
}

func (d *Dispatcher) deliver(ctx context.Context, orderNumber string, kind enums.NotificationKind, msg mail.Message) error {
	messageID, err := d.mailer.Send(ctx, msg)
	if err == nil {
		d.metrics.IncEmailSent(string(kind))
		if d.logger != nil {
			ctx := d.logger.WithFields(ctx, map[string]any{
				"order_number": orderNumber,
				"kind":         string(kind),
				"message_id":   messageID,
			})
			d.logger.Info(ctx, "notification email sent")
		}
		return nil
	}

	d.metrics.IncEmailFailed(string(kind))
	if d.logger != nil {
		d.logger.Error(d.logger.WithOrderNumber(ctx, orderNumber), "notification email failed", err)
	}
	if d.failures != nil {
		failure := &models.NotificationFailure{
			OrderNumber: orderNumber,
			Kind:        kind,
			Recipients:  append(append([]string{}, msg.To...), msg.BCC...),
			Subject:     msg.Subject,
			Reason:      err.Error(),
		}
		if recordErr := d.failures.Record(ctx, failure); recordErr != nil && d.logger != nil {
			d.logger.Error(ctx, "recording notification failure", recordErr)
		}
	}
	return err
}
