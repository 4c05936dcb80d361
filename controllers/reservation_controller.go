// controllers/reservation_controller.go
package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"rental-backend/availability"
	"rental-backend/middleware"
	"rental-backend/models"
	"rental-backend/services"
	"rental-backend/utils"
)

type ReservationSvc interface {
	Propose(ctx context.Context, listingID, guestID uint, start, end time.Time) (*models.Reservation, services.PriceBreakdown, error)
	Decide(ctx context.Context, reservationID, deciderID uint, decision availability.Decision) (*models.Reservation, error)
	GetByID(ctx context.Context, id, requesterID uint) (*models.Reservation, error)
	ListForListing(ctx context.Context, listingID, requesterID uint) ([]models.Reservation, error)
	ListForHost(ctx context.Context, hostID uint) ([]models.Reservation, error)
	ListTrips(ctx context.Context, guestID uint) ([]models.Reservation, error)
}

type CreateReservationRequest struct {
	ListingID uint   `json:"listingId" binding:"required"`
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
}

type DecideReservationRequest struct {
	Decision string `json:"decision" binding:"required,oneof=accept reject"`
}

type ReservationController struct {
	Svc ReservationSvc
}

func NewReservationController(svc ReservationSvc) *ReservationController {
	return &ReservationController{Svc: svc}
}

func (rc *ReservationController) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req CreateReservationRequest
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

	reservation, pricing, err := rc.Svc.Propose(c.Request.Context(), req.ListingID, userID, start, end)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, gin.H{
		"reservation": reservation,
		"pricing":     pricing,
	})
}

func (rc *ReservationController) Decide(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req DecideReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	reservation, err := rc.Svc.Decide(c.Request.Context(), id, userID, availability.Decision(req.Decision))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, reservation)
}

func (rc *ReservationController) Get(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reservation, err := rc.Svc.GetByID(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, reservation)
}

func (rc *ReservationController) ListForListing(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	listingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reservations, err := rc.Svc.ListForListing(c.Request.Context(), listingID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, reservations)
}

func (rc *ReservationController) Host(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	reservations, err := rc.Svc.ListForHost(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, reservations)
}

func (rc *ReservationController) Trips(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	reservations, err := rc.Svc.ListTrips(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, reservations)
}
