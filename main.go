package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carpool/internal/auth"
	"carpool/internal/booking"
	"carpool/internal/catalog"
	intconfig "carpool/internal/config"
	"carpool/internal/geocode"
	router "carpool/internal/http"
	"carpool/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	provider := geocode.NewNominatimClient(env.GeocoderBaseURL, env.GeocoderTimeout)
	resolver, err := geocode.NewResolver(provider, env.GeocodeCacheSize)
	if err != nil {
		log.Fatalf("failed to build geocode resolver: %v", err)
	}

	trips := catalog.New()
	reservations := booking.NewManager(trips, resolver)

	deps := router.Deps{
		Env:    env,
		Users:  auth.NewUserStore(),
		Tokens: auth.NewTokenManager(env.JWTSecret, 24*time.Hour),
		Trips: services.TripService{
			Catalog:  trips,
			Resolver: resolver,
			Bookings: reservations,
		},
		Reservations: services.ReservationService{
			Catalog:  trips,
			Bookings: reservations,
		},
		Manifests: services.ManifestService{
			Catalog:  trips,
			Bookings: reservations,
		},
	}

	// Router (Gin engine)
	r := router.NewRouter(deps)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("carpool API listening on http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server shutdown failed: %v", err)
	}

	log.Println("Server stopped cleanly.")
}
