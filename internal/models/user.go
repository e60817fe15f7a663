package models

import "time"

// Role is the closed set of account roles.
type Role string

const (
	RoleStudent Role = "Student"
	RoleWorker  Role = "Worker"
	RoleAdmin   Role = "Admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleWorker, RoleAdmin:
		return true
	}
	return false
}

// Availability tracks whether a worker can take new assignments.
type Availability string

const (
	WorkerAvailable Availability = "Available"
	WorkerAssigned  Availability = "Assigned"
)

type User struct {
	ID         int64        `json:"id"`
	Name       string       `json:"name"`
	Email      string       `json:"email"`
	Role       Role         `json:"role"`
	Department string       `json:"department,omitempty"`
	Status     Availability `json:"status,omitempty"`
	CreatedAt  time.Time    `json:"createdAt"`
}

// WorkerSummary is the admin-facing read model for a worker account,
// including the number of currently open assignments.
type WorkerSummary struct {
	User
	AssignedRequests int `json:"assignedRequests"`
}
