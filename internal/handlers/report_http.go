package handlers

import (
	"net/http"

	"campuscare/internal/models"
	"campuscare/internal/repository"
	"campuscare/internal/utils"
)

type ReportsHTTP struct {
	requests repository.RequestRepository
}

func NewReportsHTTP(requests repository.RequestRepository) *ReportsHTTP {
	return &ReportsHTTP{requests: requests}
}

// GET /api/reports/summary
// Returns: { total, pending, inProgress, completed }
func (h *ReportsHTTP) Summary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counts := map[string]int{}
		total := 0
		for key, status := range map[string]models.RequestStatus{
			"pending":    models.StatusPending,
			"inProgress": models.StatusInProgress,
			"completed":  models.StatusCompleted,
		} {
			n, err := h.requests.CountByStatus(r.Context(), status)
			if err != nil {
				utils.Error(w, http.StatusInternalServerError, err.Error())
				return
			}
			counts[key] = n
			total += n
		}
		counts["total"] = total
		utils.JSON(w, http.StatusOK, counts)
	}
}
