package handlers

import (
	"net/http"

	"campuscare/internal/models"
	"campuscare/internal/repository"
	"campuscare/internal/utils"
)

type NotificationHTTP struct {
	repo repository.NotificationRepository
}

func NewNotificationHTTP(repo repository.NotificationRepository) *NotificationHTTP {
	return &NotificationHTTP{repo: repo}
}

// GET /api/notifications: the full outbound log, newest first (admin only,
// enforced by route middleware).
func (h *NotificationHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.repo.List(r.Context())
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if items == nil {
			items = []models.Notification{}
		}
		utils.JSON(w, http.StatusOK, map[string]any{"items": items, "total": len(items)})
	}
}
