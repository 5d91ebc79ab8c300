package api

import (
	"log"
	stdhttp "net/http"

	"carpool/internal/auth"
	intconfig "carpool/internal/config"
	"carpool/internal/domain/models"
	h "carpool/internal/http/handlers"
	"carpool/internal/http/middleware"
	"carpool/internal/services"

	"github.com/gin-gonic/gin"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Env          intconfig.Env
	Users        *auth.UserStore
	Tokens       *auth.TokenManager
	Trips        services.TripService
	Reservations services.ReservationService
	Manifests    services.ManifestService
}

func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	authHandler := h.AuthHandler{Users: deps.Users, Tokens: deps.Tokens}
	tripHandler := h.TripHandler{Trips: deps.Trips}
	reservationHandler := h.ReservationHandler{Reservations: deps.Reservations}
	manifestHandler := h.ManifestHandler{Manifests: deps.Manifests}

	authed := middleware.Auth(deps.Tokens)
	driverOnly := middleware.RequireRoles(models.RoleDriver)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)

		// Auth
		authGroup := api.Group("/auth")
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/register", authHandler.Register)

		// Trips: reads and search are open, mutations are driver-only.
		trips := api.Group("/trips")
		trips.GET("", tripHandler.List)
		trips.GET("/:id", tripHandler.Get)
		trips.POST("/search", tripHandler.Search)

		trips.POST("", authed, driverOnly, tripHandler.Create)
		trips.DELETE("/:id", authed, driverOnly, tripHandler.Remove)
		trips.POST("/:id/cancel", authed, driverOnly, tripHandler.Cancel)
		trips.PUT("/:id/status", authed, driverOnly, tripHandler.ChangeStatus)
		trips.DELETE("/:id/pickup-points/:index", authed, driverOnly, tripHandler.RemovePickupPoint)
		trips.GET("/:id/manifest", authed, driverOnly, manifestHandler.TripManifest)

		// Reservations: any authenticated caller.
		trips.POST("/:id/reservations", authed, reservationHandler.Reserve)
		trips.DELETE("/:id/reservations/:rid", authed, reservationHandler.Cancel)

		reservations := api.Group("/reservations", authed)
		reservations.GET("", reservationHandler.ListMine)
		reservations.GET("/:rid/receipt", manifestHandler.ReservationReceipt)
	}

	return r
}
