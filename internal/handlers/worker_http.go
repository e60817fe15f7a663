package handlers

import (
	"encoding/json"
	"net/http"

	"campuscare/internal/models"
	"campuscare/internal/service"
	"campuscare/internal/utils"
)

type WorkerHTTP struct {
	svc *service.WorkerService
}

func NewWorkerHTTP(svc *service.WorkerService) *WorkerHTTP {
	return &WorkerHTTP{svc: svc}
}

// GET /api/workers?department= lists workers with open-assignment counts.
func (h *WorkerHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			utils.Error(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		items, err := h.svc.List(r.Context(), actor, r.URL.Query().Get("department"))
		if err != nil {
			serviceError(w, err)
			return
		}
		if items == nil {
			items = []models.WorkerSummary{}
		}
		utils.JSON(w, http.StatusOK, map[string]any{"items": items, "total": len(items)})
	}
}

// POST /api/workers
func (h *WorkerHTTP) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			utils.Error(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		var in struct {
			Name       string `json:"name"`
			Email      string `json:"email"`
			Password   string `json:"password"`
			Department string `json:"department"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		u, err := h.svc.Add(r.Context(), actor, in.Name, in.Email, in.Password, in.Department)
		if err != nil {
			serviceError(w, err)
			return
		}
		utils.JSON(w, http.StatusCreated, u)
	}
}

// DELETE /api/workers/{id}
func (h *WorkerHTTP) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			utils.Error(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		id, ok := pathID(r)
		if !ok {
			utils.Error(w, http.StatusBadRequest, "invalid id")
			return
		}
		if err := h.svc.Delete(r.Context(), actor, id); err != nil {
			serviceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
