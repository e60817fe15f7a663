package notify

import (
	"context"

	"github.com/rs/zerolog"

	"campuscare/internal/models"
	"campuscare/internal/repository"
)

// Dispatcher attempts delivery of composed messages and records exactly one
// notification log row per addressee, carrying the true delivery outcome.
// Transport failures never propagate past this boundary.
type Dispatcher struct {
	mailer        Mailer
	notifications repository.NotificationRepository
	log           zerolog.Logger
}

func NewDispatcher(mailer Mailer, notifications repository.NotificationRepository, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{mailer: mailer, notifications: notifications, log: log}
}

// Dispatch sends msg and appends its log row. requestID is 0 for messages not
// tied to a request. The return value reports delivery only; the log row is
// written in either case.
func (d *Dispatcher) Dispatch(ctx context.Context, requestID int64, msg Message) bool {
	status := models.DeliverySent
	err := d.mailer.Send(ctx, msg.RecipientEmail, msg.Subject, msg.Body, msg.AttachmentPath)
	if err != nil {
		status = models.DeliveryFailed
		d.log.Warn().Err(err).
			Str("to", msg.RecipientEmail).
			Str("subject", msg.Subject).
			Msg("email delivery failed")
	}

	n := models.Notification{
		RequestID:   requestID,
		RecipientID: msg.RecipientID,
		Subject:     msg.Subject,
		Message:     msg.Body,
		Status:      status,
	}
	if cerr := d.notifications.Create(ctx, &n); cerr != nil {
		d.log.Error().Err(cerr).Int64("recipient", msg.RecipientID).Msg("notification log write failed")
	}
	return err == nil
}
