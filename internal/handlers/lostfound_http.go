package handlers

import (
	"net/http"
	"strconv"

	"campuscare/internal/models"
	"campuscare/internal/service"
	"campuscare/internal/upload"
	"campuscare/internal/utils"
)

type LostFoundHTTP struct {
	svc     *service.LostFoundService
	uploads *upload.Store
}

func NewLostFoundHTTP(svc *service.LostFoundService, uploads *upload.Store) *LostFoundHTTP {
	return &LostFoundHTTP{svc: svc, uploads: uploads}
}

// GET /api/lost-items: visible to any authenticated student.
func (h *LostFoundHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.svc.List(r.Context())
		if err != nil {
			serviceError(w, err)
			return
		}
		if items == nil {
			items = []models.LostItem{}
		}
		utils.JSON(w, http.StatusOK, map[string]any{"items": items, "total": len(items)})
	}
}

// POST /api/lost-items: multipart form with an optional "image" file.
func (h *LostFoundHTTP) Create() http.HandlerFunc {
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
			name, serr := h.uploads.Save(fh, "lost_found_"+strconv.FormatInt(actor.ID, 10))
			if serr != nil {
				utils.Error(w, http.StatusBadRequest, serr.Error())
				return
			}
			imagePath = name
		}

		item, err := h.svc.Report(r.Context(), actor, service.LostItemInput{
			ItemName:      r.FormValue("itemName"),
			Description:   r.FormValue("description"),
			LocationFound: r.FormValue("locationFound"),
			ContactInfo:   r.FormValue("contactInfo"),
			ImagePath:     imagePath,
		})
		if err != nil {
			serviceError(w, err)
			return
		}
		utils.JSON(w, http.StatusCreated, item)
	}
}

// POST /api/lost-items/{id}/collected: reporter only, one-way.
func (h *LostFoundHTTP) MarkCollected() http.HandlerFunc {
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
		if err := h.svc.MarkCollected(r.Context(), actor, id); err != nil {
			serviceError(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, map[string]string{"message": "item marked as collected"})
	}
}

// DELETE /api/lost-items/{id}: reporter only, unclaimed only.
func (h *LostFoundHTTP) Delete() http.HandlerFunc {
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
