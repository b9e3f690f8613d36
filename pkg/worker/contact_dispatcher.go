package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/donorconnect/donor-api/internal/email"
	"github.com/donorconnect/donor-api/internal/model"
	"github.com/donorconnect/donor-api/pkg/logger"
	"github.com/donorconnect/donor-api/pkg/messaging"
	"github.com/donorconnect/donor-api/pkg/metrics"
)

// ContactDispatcher turns contact alerts from the broker into donor emails.
// Failed deliveries are logged and counted; nothing is retried.
type ContactDispatcher struct {
	broker  messaging.Broker
	channel string
	mailer  email.Service
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func NewContactDispatcher(
	broker messaging.Broker,
	channel string,
	mailer email.Service,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *ContactDispatcher {
	return &ContactDispatcher{
		broker:  broker,
		channel: channel,
		mailer:  mailer,
		logger:  logger,
		metrics: metrics,
	}
}

// Start blocks until ctx is done or the broker closes.
func (d *ContactDispatcher) Start(ctx context.Context) error {
	d.logger.Info("Starting contact dispatcher", "channel", d.channel)
	err := messaging.Consume(ctx, d.broker, d.channel, d.Handle)
	d.logger.Info("Contact dispatcher stopped")
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Handle processes one envelope. Unknown event types are ignored.
func (d *ContactDispatcher) Handle(ctx context.Context, env messaging.Envelope) error {
	if env.Type != model.EventDonorContactRequested {
		return nil
	}

	var alert model.ContactAlert
	if err := json.Unmarshal(env.Payload, &alert); err != nil {
		d.count("invalid")
		return fmt.Errorf("failed to decode contact alert: %w", err)
	}

	if alert.DonorEmail == "" {
		d.count("skipped")
		d.logger.Warn("Donor has no email address, alert not delivered",
			"alert_id", alert.ID, "donor_id", alert.DonorID)
		return nil
	}

	if err := d.mailer.SendDonorContact(ctx, &alert); err != nil {
		d.count("error")
		return err
	}

	d.count("delivered")
	d.logger.Info("Contact alert delivered", "alert_id", alert.ID, "request_id", alert.RequestID)
	return nil
}

func (d *ContactDispatcher) count(status string) {
	if d.metrics != nil {
		d.metrics.AlertsDelivered.WithLabelValues(status).Inc()
	}
}
