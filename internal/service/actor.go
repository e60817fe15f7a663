package service

import "campuscare/internal/models"

// Actor is the authenticated context passed into every workflow operation:
// who is acting and in which role. There is no ambient session state.
type Actor struct {
	ID   int64
	Role models.Role
}
