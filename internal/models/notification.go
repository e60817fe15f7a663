package models

import "time"

// DeliveryStatus records the true outcome of a dispatch attempt.
type DeliveryStatus string

const (
	DeliverySent   DeliveryStatus = "Sent"
	DeliveryFailed DeliveryStatus = "Failed"
)

// Notification is an append-only log entry for one outbound email attempt.
// RequestID is 0 for notifications not tied to a request (lost-item
// broadcasts, pending-request sweeps). Rows are never updated or deleted.
type Notification struct {
	ID          int64          `json:"id"`
	RequestID   int64          `json:"requestId,omitempty"`
	RecipientID int64          `json:"recipientId"`
	Subject     string         `json:"subject"`
	Message     string         `json:"message"`
	SentDate    time.Time      `json:"sentDate"`
	Status      DeliveryStatus `json:"status"`

	RecipientName string `json:"recipientName,omitempty"`
	RequestTitle  string `json:"requestTitle,omitempty"`
}
