package postgres

import (
	"context"
	"time"

	"campuscare/internal/models"
	"campuscare/internal/repository"
)

type NotificationRepo struct{ db DB }

func NewNotificationRepo(db DB) repository.NotificationRepository { return &NotificationRepo{db: db} }

// Create appends one log row. Rows are immutable; there is no update path.
func (r *NotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	if n.SentDate.IsZero() {
		n.SentDate = time.Now()
	}
	if n.Status == "" {
		n.Status = models.DeliverySent
	}
	return r.db.QueryRow(ctx, `
		INSERT INTO email_notifications (request_id, recipient_id, subject, message, sent_date, status)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id`,
		nullIfZero(n.RequestID), n.RecipientID, n.Subject, n.Message, n.SentDate, n.Status).
		Scan(&n.ID)
}

func (r *NotificationRepo) List(ctx context.Context) ([]models.Notification, error) {
	rows, err := r.db.Query(ctx, `
		SELECT en.id, COALESCE(en.request_id, 0), en.recipient_id, en.subject, en.message,
		       en.sent_date, en.status, COALESCE(u.name,''), COALESCE(req.title,'')
		FROM email_notifications en
		LEFT JOIN users u ON en.recipient_id = u.id
		LEFT JOIN requests req ON en.request_id = req.id
		ORDER BY en.sent_date DESC, en.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.RequestID, &n.RecipientID, &n.Subject, &n.Message,
			&n.SentDate, &n.Status, &n.RecipientName, &n.RequestTitle); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
