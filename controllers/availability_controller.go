// controllers/availability_controller.go
package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"rental-backend/middleware"
	"rental-backend/models"
	"rental-backend/utils"
)

type CalendarSvc interface {
	BlockedPeriods(ctx context.Context, listingID uint) ([]models.BlockedPeriod, error)
	Block(ctx context.Context, listingID, ownerID uint, start, end time.Time) (*models.BlockedPeriod, error)
	Unblock(ctx context.Context, blockedPeriodID, ownerID uint) error
}

type BlockDatesRequest struct {
	ListingID uint   `json:"listingId" binding:"required"`
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
}

// AvailabilityController exposes the host-facing calendar: listing
// blocked ranges, adding one, removing one.
type AvailabilityController struct {
	Svc CalendarSvc
}

func NewAvailabilityController(svc CalendarSvc) *AvailabilityController {
	return &AvailabilityController{Svc: svc}
}

func (ac *AvailabilityController) List(c *gin.Context) {
	raw := c.Query("listingId")
	listingID, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || listingID == 0 {
		utils.JSONError(c, http.StatusBadRequest, "listingId query parameter is required")
		return
	}

	blocked, err := ac.Svc.BlockedPeriods(c.Request.Context(), uint(listingID))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, blocked)
}

func (ac *AvailabilityController) Block(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req BlockDatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid startDate format")
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid endDate format")
		return
	}

	blocked, err := ac.Svc.Block(c.Request.Context(), req.ListingID, userID, start, end)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, blocked)
}

func (ac *AvailabilityController) Unblock(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ac.Svc.Unblock(c.Request.Context(), id, userID); err != nil {
		respondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
