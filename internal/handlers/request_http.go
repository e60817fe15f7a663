package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"campuscare/internal/models"
	"campuscare/internal/service"
	"campuscare/internal/upload"
	"campuscare/internal/utils"
)

// RequestHTTP wires the request lifecycle endpoints to the workflow.
type RequestHTTP struct {
	workflow *service.Workflow
	uploads  *upload.Store
}

func NewRequestHTTP(workflow *service.Workflow, uploads *upload.Store) *RequestHTTP {
	return &RequestHTTP{workflow: workflow, uploads: uploads}
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

// GET /api/requests: scoped by the caller's role.
func (h *RequestHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			utils.Error(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		items, err := h.workflow.List(r.Context(), actor)
		if err != nil {
			serviceError(w, err)
			return
		}
		if items == nil {
			items = []models.Request{}
		}
		utils.JSON(w, http.StatusOK, map[string]any{"items": items, "total": len(items)})
	}
}

// GET /api/requests/{id}
func (h *RequestHTTP) Get() http.HandlerFunc {
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
		req, err := h.workflow.Get(r.Context(), actor, id)
		if err != nil {
			serviceError(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, req)
	}
}

// POST /api/requests: multipart form with an optional "image" evidence file.
func (h *RequestHTTP) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			utils.Error(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		if err := r.ParseMultipartForm(upload.MaxFileSize); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid form")
			return
		}

		imagePath := ""
		if file, fh, err := r.FormFile("image"); err == nil {
			file.Close()
			name, serr := h.uploads.Save(fh, "request_"+strconv.FormatInt(actor.ID, 10))
			if serr != nil {
				utils.Error(w, http.StatusBadRequest, serr.Error())
				return
			}
			imagePath = name
		}

		req, err := h.workflow.Submit(r.Context(), actor, service.SubmitInput{
			Title:       r.FormValue("title"),
			Location:    r.FormValue("location"),
			Priority:    models.Priority(r.FormValue("priority")),
			Description: r.FormValue("description"),
			ImagePath:   imagePath,
		})
		if err != nil {
			serviceError(w, err)
			return
		}
		utils.JSON(w, http.StatusCreated, req)
	}
}

// POST /api/requests/{id}/assign: admin triage (worker, department, status, notes).
func (h *RequestHTTP) Assign() http.HandlerFunc {
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

		var in struct {
			WorkerID   int64  `json:"workerId"`
			Department string `json:"department"`
			Status     string `json:"status"`
			Notes      string `json:"notes"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		req, err := h.workflow.Assign(r.Context(), actor, id, service.AssignInput{
			WorkerID:   in.WorkerID,
			Department: in.Department,
			Status:     models.RequestStatus(in.Status),
			Notes:      in.Notes,
		})
		if err != nil {
			serviceError(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, req)
	}
}

// POST /api/requests/{id}/status: worker progress update, multipart form
// with an optional "workerImage" evidence file.
func (h *RequestHTTP) UpdateStatus() http.HandlerFunc {
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
		if err := r.ParseMultipartForm(upload.MaxFileSize); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid form")
			return
		}

		evidence := ""
		if file, fh, err := r.FormFile("workerImage"); err == nil {
			file.Close()
			name, serr := h.uploads.Save(fh, "worker_"+strconv.FormatInt(id, 10))
			if serr != nil {
				utils.Error(w, http.StatusBadRequest, serr.Error())
				return
			}
			evidence = name
		}

		req, err := h.workflow.UpdateStatus(r.Context(), actor, id,
			models.RequestStatus(r.FormValue("status")), r.FormValue("workerNotes"), evidence)
		if err != nil {
			serviceError(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, req)
	}
}
