package services

import (
	"bytes"
	"fmt"
	"strings"

	"carpool/internal/booking"
	"carpool/internal/catalog"
	"carpool/internal/domain"
	"carpool/internal/domain/models"
	"carpool/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// ManifestService renders the driver's trip manifest and the passenger's
// reservation receipt as PDFs.
type ManifestService struct {
	Catalog   *catalog.Catalog
	Bookings  *booking.Manager
	RequestID string
}

// TripManifest is driver-only: the pickup list for one trip, in route order.
func (s ManifestService) TripManifest(tripID, driverID int64) ([]byte, string, error) {
	trip, err := s.Catalog.Get(tripID)
	if err != nil {
		return nil, "", err
	}
	if trip.DriverID != driverID {
		return nil, "", domain.UnauthorizedError{Msg: "trip belongs to another driver"}
	}

	utils.LogEvent(s.RequestID, "manifest", "trip_manifest", fmt.Sprintf("trip_id=%d", tripID))
	return buildManifestPDF(trip)
}

// ReservationReceipt belongs to the rider who made the reservation.
func (s ManifestService) ReservationReceipt(reservationID, riderID int64) ([]byte, string, error) {
	res, err := s.Bookings.GetReservation(reservationID)
	if err != nil {
		return nil, "", err
	}
	if res.RiderID != riderID {
		return nil, "", domain.UnauthorizedError{Msg: "reservation belongs to another rider"}
	}
	trip, err := s.Catalog.Get(res.TripID)
	if err != nil {
		return nil, "", err
	}

	utils.LogEvent(s.RequestID, "manifest", "receipt", fmt.Sprintf("reservation_id=%d", reservationID))
	return buildReceiptPDF(trip, res)
}

func buildManifestPDF(t models.Trip) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Trip Manifest", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "TRIP MANIFEST")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Trip          : #%d", t.ID),
		fmt.Sprintf("Route         : %s -> %s", safe(t.Origin, "-"), safe(t.Destination, "-")),
		fmt.Sprintf("Date/Time     : %s %s", safe(t.TripDate, "-"), safe(t.TripTime, "-")),
		fmt.Sprintf("Vehicle       : %s", safe(t.VehicleCode, "-")),
		fmt.Sprintf("Fare per seat : %s", formatFare(t.Fare)),
		fmt.Sprintf("Seats         : %d available of %d", t.Available, t.Capacity),
		fmt.Sprintf("Status        : %s", string(t.Status)),
	}
	for _, l := range lines {
		pdf.Cell(0, 7, l)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Pickup points:")
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "", 11)
	if len(t.Pickups) == 0 {
		pdf.Cell(0, 6, "(none yet)")
		pdf.Ln(6)
	}
	for i, p := range t.Pickups {
		coord := "unresolved"
		if p.Coord != nil {
			coord = p.Coord.Key()
		}
		entry := fmt.Sprintf("%d) %s", i+1, safe(p.Address, "-"))
		if p.Phone != "" {
			entry += "  tel " + p.Phone
		}
		entry += "  [" + coord + "]"
		pdf.MultiCell(0, 6, entry, "", "", false)
		pdf.Ln(1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("MANIFEST_%d_%s.pdf", t.ID, safeFilenamePart(t.Origin+"_"+t.Destination))
	return buf.Bytes(), filename, nil
}

func buildReceiptPDF(t models.Trip, res models.Reservation) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Reservation Receipt", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "RESERVATION RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Reservation : RSV-%d-%d", res.TripID, res.ID),
		fmt.Sprintf("Status      : %s", string(res.Status)),
		fmt.Sprintf("Route       : %s -> %s", safe(t.Origin, "-"), safe(t.Destination, "-")),
		fmt.Sprintf("Date/Time   : %s %s", safe(t.TripDate, "-"), safe(t.TripTime, "-")),
		fmt.Sprintf("Seats       : %d", res.Seats),
	}
	for _, l := range lines {
		pdf.Cell(0, 7, l)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: "+formatFare(t.Fare*int64(res.Seats)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, "Pickup points for this reservation:")
	pdf.Ln(7)
	for _, p := range t.Pickups {
		if p.ReservationID != res.ID {
			continue
		}
		pdf.MultiCell(0, 6, "- "+safe(p.Address, "-"), "", "", false)
		pdf.Ln(1)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Show this receipt to the driver at pickup. One pickup point per reserved seat.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("RECEIPT_%d_%d.pdf", res.TripID, res.ID)
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}

func formatFare(v int64) string {
	if v <= 0 {
		return "$ 0"
	}
	s := fmt.Sprintf("%d", v)
	var out []byte
	n := len(s)
	for i := 0; i < n; i++ {
		out = append(out, s[i])
		pos := n - i - 1
		if pos > 0 && pos%3 == 0 {
			out = append(out, '.')
		}
	}
	return "$ " + string(out)
}
