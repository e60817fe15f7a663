package handlers

import (
	"errors"
	"net/http"

	"campuscare/internal/middleware"
	"campuscare/internal/models"
	"campuscare/internal/service"
	"campuscare/internal/utils"
)

// actorFrom builds the authenticated context value for service calls from
// what WithAuth put on the request context.
func actorFrom(r *http.Request) (service.Actor, bool) {
	uid, ok := utils.GetInt64(r.Context(), middleware.CtxUserID)
	if !ok || uid == 0 {
		return service.Actor{}, false
	}
	role, _ := utils.GetString(r.Context(), middleware.CtxRole)
	return service.Actor{ID: uid, Role: models.Role(role)}, true
}

// serviceError maps service sentinel errors onto HTTP statuses.
func serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		utils.Error(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrForbidden):
		utils.Error(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, service.ErrInvalidCredentials):
		utils.Error(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrPasswordMismatch):
		utils.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrCollected):
		utils.Error(w, http.StatusConflict, err.Error())
	default:
		utils.Error(w, http.StatusInternalServerError, err.Error())
	}
}
