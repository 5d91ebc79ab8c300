package handlers

import (
	"net/http"

	"carpool/internal/http/middleware"
	"carpool/internal/services"

	"github.com/gin-gonic/gin"
)

// ManifestHandler serves the trip manifest and reservation receipt PDFs.
type ManifestHandler struct {
	Manifests services.ManifestService
}

func (h ManifestHandler) svc(c *gin.Context) services.ManifestService {
	s := h.Manifests
	s.RequestID = middleware.GetRequestID(c)
	return s
}

// GET /api/trips/:id/manifest (driver only)
func (h ManifestHandler) TripManifest(c *gin.Context) {
	tripID := ParamID(c, "id")
	if tripID == 0 {
		RespondError(c, http.StatusBadRequest, "invalid trip id", nil)
		return
	}

	pdf, filename, err := h.svc(c).TripManifest(tripID, middleware.GetUserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// GET /api/reservations/:rid/receipt
func (h ManifestHandler) ReservationReceipt(c *gin.Context) {
	rid := ParamID(c, "rid")
	if rid == 0 {
		RespondError(c, http.StatusBadRequest, "invalid reservation id", nil)
		return
	}

	pdf, filename, err := h.svc(c).ReservationReceipt(rid, middleware.GetUserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
