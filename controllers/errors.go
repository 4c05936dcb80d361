// controllers/errors.go
package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"rental-backend/availability"
	"rental-backend/services"
	"rental-backend/utils"
)

// respondError translates domain errors into HTTP statuses; the
// services never see HTTP.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, availability.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, err.Error())

	case errors.Is(err, availability.ErrConflict),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrAlreadyFavorited):
		utils.JSONError(c, http.StatusConflict, err.Error())

	case errors.Is(err, availability.ErrNotAuthorized):
		utils.JSONError(c, http.StatusForbidden, err.Error())

	case errors.Is(err, availability.ErrValidation),
		errors.Is(err, availability.ErrInvalidState):
		utils.JSONError(c, http.StatusBadRequest, err.Error())

	case errors.Is(err, services.ErrInvalidCredentials):
		utils.JSONError(c, http.StatusUnauthorized, err.Error())

	default:
		log.Printf("internal error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "internal server error")
	}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// parseDate accepts plain dates and RFC3339 timestamps from the
// boundary; everything is day-granularity UTC past this point.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
