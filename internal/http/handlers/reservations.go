package handlers

import (
	"net/http"

	"carpool/internal/http/middleware"
	"carpool/internal/services"

	"github.com/gin-gonic/gin"
)

// ReservationHandler exposes seat reservation and cancellation for
// authenticated passengers.
type ReservationHandler struct {
	Reservations services.ReservationService
}

func (h ReservationHandler) svc(c *gin.Context) services.ReservationService {
	s := h.Reservations
	s.RequestID = middleware.GetRequestID(c)
	return s
}

// POST /api/trips/:id/reservations
func (h ReservationHandler) Reserve(c *gin.Context) {
	tripID := ParamID(c, "id")
	if tripID == 0 {
		RespondError(c, http.StatusBadRequest, "invalid trip id", nil)
		return
	}

	var in services.ReserveInput
	if !BindJSONOrError(c, &in) {
		return
	}

	res, err := h.svc(c).Reserve(c.Request.Context(), middleware.GetUserID(c), tripID, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// DELETE /api/trips/:id/reservations/:rid
func (h ReservationHandler) Cancel(c *gin.Context) {
	tripID := ParamID(c, "id")
	rid := ParamID(c, "rid")
	if tripID == 0 || rid == 0 {
		RespondError(c, http.StatusBadRequest, "invalid id", nil)
		return
	}

	if err := h.svc(c).Cancel(tripID, rid); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GET /api/reservations (caller's own)
func (h ReservationHandler) ListMine(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc(c).ListForRider(middleware.GetUserID(c)))
}
