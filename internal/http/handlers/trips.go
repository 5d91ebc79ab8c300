package handlers

import (
	"net/http"
	"strconv"

	"carpool/internal/domain/models"
	"carpool/internal/http/middleware"
	"carpool/internal/services"

	"github.com/gin-gonic/gin"
)

// TripHandler exposes the trip catalog, matcher and driver-only mutations.
type TripHandler struct {
	Trips services.TripService
}

func (h TripHandler) svc(c *gin.Context) services.TripService {
	s := h.Trips
	s.RequestID = middleware.GetRequestID(c)
	return s
}

// GET /api/trips
func (h TripHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc(c).ListTrips())
}

// GET /api/trips/:id
func (h TripHandler) Get(c *gin.Context) {
	id := ParamID(c, "id")
	if id == 0 {
		RespondError(c, http.StatusBadRequest, "invalid trip id", nil)
		return
	}

	trip, err := h.svc(c).GetTrip(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// POST /api/trips/search
func (h TripHandler) Search(c *gin.Context) {
	var filter models.TripFilter
	if !BindJSONOrError(c, &filter) {
		return
	}
	c.JSON(http.StatusOK, h.svc(c).SearchTrips(filter))
}

// POST /api/trips (driver only)
func (h TripHandler) Create(c *gin.Context) {
	var in services.CreateTripInput
	if !BindJSONOrError(c, &in) {
		return
	}

	trip, err := h.svc(c).CreateTrip(c.Request.Context(), middleware.GetUserID(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, trip)
}

// POST /api/trips/:id/cancel (driver only)
func (h TripHandler) Cancel(c *gin.Context) {
	id := ParamID(c, "id")
	if id == 0 {
		RespondError(c, http.StatusBadRequest, "invalid trip id", nil)
		return
	}

	if err := h.svc(c).CancelTrip(id, middleware.GetUserID(c)); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DELETE /api/trips/:id (driver only)
func (h TripHandler) Remove(c *gin.Context) {
	id := ParamID(c, "id")
	if id == 0 {
		RespondError(c, http.StatusBadRequest, "invalid trip id", nil)
		return
	}

	if err := h.svc(c).RemoveTrip(id, middleware.GetUserID(c)); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type statusRequest struct {
	Status string `json:"status"`
}

// PUT /api/trips/:id/status (driver only)
func (h TripHandler) ChangeStatus(c *gin.Context) {
	id := ParamID(c, "id")
	if id == 0 {
		RespondError(c, http.StatusBadRequest, "invalid trip id", nil)
		return
	}

	var req statusRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	if err := h.svc(c).ChangeStatus(id, middleware.GetUserID(c), models.TripStatus(req.Status)); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DELETE /api/trips/:id/pickup-points/:index (driver only)
func (h TripHandler) RemovePickupPoint(c *gin.Context) {
	id := ParamID(c, "id")
	if id == 0 {
		RespondError(c, http.StatusBadRequest, "invalid trip id", nil)
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		RespondError(c, http.StatusBadRequest, "invalid pickup point index", nil)
		return
	}

	if err := h.svc(c).RemovePickupPoint(id, middleware.GetUserID(c), index); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
