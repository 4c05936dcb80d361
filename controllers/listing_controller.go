// controllers/listing_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rental-backend/middleware"
	"rental-backend/services"
	"rental-backend/utils"
)

type ListingController struct {
	Service *services.ListingService
}

func NewListingController(service *services.ListingService) *ListingController {
	return &ListingController{Service: service}
}

func (lc *ListingController) Search(c *gin.Context) {
	filters := services.ListingFilters{
		Category: c.Query("category"),
		Location: c.Query("location"),
	}
	if raw := c.Query("guestCount"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			utils.JSONError(c, http.StatusBadRequest, "invalid guestCount")
			return
		}
		filters.GuestCount = n
	}
	if raw := c.Query("minPrice"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 0 {
			utils.JSONError(c, http.StatusBadRequest, "invalid minPrice")
			return
		}
		filters.MinPrice = n
	}
	if raw := c.Query("maxPrice"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 0 {
			utils.JSONError(c, http.StatusBadRequest, "invalid maxPrice")
			return
		}
		filters.MaxPrice = n
	}

	listings, err := lc.Service.Search(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, listings)
}

func (lc *ListingController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	listing, err := lc.Service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, listing)
}

func (lc *ListingController) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	var input services.ListingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	listing, err := lc.Service.Create(c.Request.Context(), userID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, listing)
}

func (lc *ListingController) Update(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input services.ListingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	listing, err := lc.Service.Update(c.Request.Context(), id, userID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, listing)
}

func (lc *ListingController) Delete(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := lc.Service.Delete(c.Request.Context(), id, userID); err != nil {
		respondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}

func (lc *ListingController) MyListings(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	listings, err := lc.Service.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, listings)
}
