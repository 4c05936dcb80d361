// controllers/favorite_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rental-backend/middleware"
	"rental-backend/services"
	"rental-backend/utils"
)

type AddFavoriteRequest struct {
	ListingID uint `json:"listingId" binding:"required"`
}

type FavoriteController struct {
	Service *services.FavoriteService
}

func NewFavoriteController(service *services.FavoriteService) *FavoriteController {
	return &FavoriteController{Service: service}
}

func (fc *FavoriteController) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	favorites, err := fc.Service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, favorites)
}

func (fc *FavoriteController) Add(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	favorite, err := fc.Service.Add(c.Request.Context(), userID, req.ListingID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, favorite)
}

func (fc *FavoriteController) Remove(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	listingID, ok := parseIDParam(c, "listingId")
	if !ok {
		return
	}

	if err := fc.Service.Remove(c.Request.Context(), userID, listingID); err != nil {
		respondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": listingID})
}
