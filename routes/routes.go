package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"rental-backend/controllers"
	"rental-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func SetupRouter(
	uc *controllers.UserController,
	lc *controllers.ListingController,
	rc *controllers.ReservationController,
	ac *controllers.AvailabilityController,
	fc *controllers.FavoriteController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", uc.Register)
			auth.POST("/login", uc.Login)
		}

		api.GET("/users/me", middleware.Auth(), uc.Me)

		listings := api.Group("/listings")
		{
			listings.GET("", lc.Search)
			listings.GET("/:id", lc.Get)
			listings.POST("", middleware.Auth(), lc.Create)
			listings.PUT("/:id", middleware.Auth(), lc.Update)
			listings.DELETE("/:id", middleware.Auth(), lc.Delete)
			listings.GET("/mine", middleware.Auth(), lc.MyListings)
		}

		reservations := api.Group("/reservations", middleware.Auth())
		{
			reservations.POST("", rc.Create)
			reservations.PATCH("/:id", rc.Decide)
			reservations.GET("/:id", rc.Get)
			reservations.GET("/listing/:id", rc.ListForListing)
			reservations.GET("/host", rc.Host)
		}

		api.GET("/trips", middleware.Auth(), rc.Trips)

		calendar := api.Group("/availability")
		{
			calendar.GET("", ac.List)
			calendar.POST("", middleware.Auth(), ac.Block)
			calendar.DELETE("/:id", middleware.Auth(), ac.Unblock)
		}

		favorites := api.Group("/favorites", middleware.Auth())
		{
			favorites.GET("", fc.List)
			favorites.POST("", fc.Add)
			favorites.DELETE("/:listingId", fc.Remove)
		}
	}

	return r
}
