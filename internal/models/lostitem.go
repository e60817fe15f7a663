package models

import "time"

// LostItemStatus is the claim state of a lost-item report.
type LostItemStatus string

const (
	ItemUnclaimed LostItemStatus = "Unclaimed"
	ItemCollected LostItemStatus = "Collected"
)

// LostItem is a lost-and-found report owned by the student who filed it.
// Once Collected it is immutable.
type LostItem struct {
	ID            int64          `json:"id"`
	StudentID     int64          `json:"studentId"`
	ItemName      string         `json:"itemName"`
	Description   string         `json:"description"`
	LocationFound string         `json:"locationFound"`
	DateFound     time.Time      `json:"dateFound"`
	ImagePath     string         `json:"imagePath,omitempty"`
	ContactInfo   string         `json:"contactInfo"`
	Status        LostItemStatus `json:"status"`

	ReporterName  string `json:"reporterName,omitempty"`
	ReporterEmail string `json:"reporterEmail,omitempty"`
}
