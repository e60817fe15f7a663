package models

import "time"

// RequestStatus is the closed set of service request states.
type RequestStatus string

const (
	StatusPending    RequestStatus = "Pending"
	StatusInProgress RequestStatus = "In Progress"
	StatusCompleted  RequestStatus = "Completed"
)

// Valid reports whether s is a known request status.
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Priority is the ordered urgency of a request.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Request is a service ticket owned by exactly one student, optionally
// assigned to one worker and one department. StudentName/StudentEmail and
// WorkerName/WorkerEmail are read-model fields populated by a JOIN at the
// persistence boundary; they are never written back.
type Request struct {
	ID          int64         `json:"id"`
	StudentID   int64         `json:"studentId"`
	Title       string        `json:"title"`
	Location    string        `json:"location"`
	Status      RequestStatus `json:"status"`
	Priority    Priority      `json:"priority"`
	Description string        `json:"description"`
	Date        time.Time     `json:"date"`
	WorkerID    int64         `json:"workerId,omitempty"` // 0 = unassigned
	Department  string        `json:"department,omitempty"`
	Notes       string        `json:"notes,omitempty"`       // admin notes
	WorkerNotes string        `json:"workerNotes,omitempty"` // completion notes
	ImagePath   string        `json:"imagePath,omitempty"`   // requester evidence
	WorkerImage string        `json:"workerImage,omitempty"` // worker evidence

	StudentName  string `json:"studentName,omitempty"`
	StudentEmail string `json:"studentEmail,omitempty"`
	WorkerName   string `json:"workerName,omitempty"`
	WorkerEmail  string `json:"workerEmail,omitempty"`
}

// Assigned reports whether a worker currently holds this request.
func (r *Request) Assigned() bool { return r.WorkerID != 0 }
