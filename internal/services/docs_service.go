package services

import (
	"bytes"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	intconfig "fleetportal/internal/config"
	"fleetportal/internal/domain"
	"fleetportal/internal/repositories"
	"fleetportal/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService menghasilkan PDF e-ticket per booking.
type DocsService struct {
	BookingRepo repositories.BookingRepo
	TripRepo    repositories.TripRepo
	SeatRepo    repositories.SeatRepo
	DB          *sql.DB
	RequestID   string
	Loader      func(int64) (bookingDocData, error)
}

type bookingDocData struct {
	BookingID      int64
	PassengerName  string
	PassengerPhone string
	Seats          []int
	Origin         string
	Destination    string
	DepartureTime  string
	PricePerSeat   int64
	Total          int64
	PaymentStatus  string
}

func (s DocsService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s DocsService) GenerateETicket(bookingID int64) ([]byte, string, error) {
	data, err := s.loadBookingDocData(bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_eticket", fmt.Sprintf("booking_id=%d", bookingID))
	return buildETicketPDF(data)
}

func (s DocsService) loadBookingDocData(bookingID int64) (bookingDocData, error) {
	if s.Loader != nil {
		return s.Loader(bookingID)
	}

	var out bookingDocData
	bookingRepo := s.BookingRepo
	if bookingRepo.DB == nil {
		bookingRepo = repositories.BookingRepo{DB: s.db()}
	}
	tripRepo := s.TripRepo
	if tripRepo.DB == nil {
		tripRepo = repositories.TripRepo{DB: s.db()}
	}
	seatRepo := s.SeatRepo
	if seatRepo.DB == nil {
		seatRepo = repositories.SeatRepo{DB: s.db()}
	}

	booking, err := bookingRepo.GetByID(bookingID)
	if err == sql.ErrNoRows {
		return out, domain.NotFoundError{Resource: "booking"}
	}
	if err != nil {
		return out, err
	}

	out.BookingID = booking.ID
	out.PassengerName = booking.PassengerName
	out.PassengerPhone = booking.PassengerPhone
	out.PricePerSeat = booking.PricePerSeat
	out.Total = booking.Total
	out.PaymentStatus = booking.PaymentStatus

	if seats, err := seatRepo.NumbersByBooking(s.db(), bookingID); err == nil {
		out.Seats = seats
	}

	if trip, err := tripRepo.GetByID(booking.TripID); err == nil {
		out.Origin = trip.Origin
		out.Destination = trip.Destination
		out.DepartureTime = utils.FormatDateTime(trip.DepartureTime)
	}

	return out, nil
}

func buildETicketPDF(d bookingDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Nama Penumpang : %s", safe(d.PassengerName, "-")),
		fmt.Sprintf("No HP          : %s", safe(d.PassengerPhone, "-")),
		fmt.Sprintf("Seat           : %s", safe(joinSeats(d.Seats), "-")),
		fmt.Sprintf("Rute           : %s -> %s", safe(d.Origin, "-"), safe(d.Destination, "-")),
		fmt.Sprintf("Berangkat      : %s", safe(d.DepartureTime, "-")),
		fmt.Sprintf("Harga/Seat     : %s", utils.FormatRupiah(d.PricePerSeat)),
		fmt.Sprintf("Total          : %s", utils.FormatRupiah(d.Total)),
		fmt.Sprintf("Pembayaran     : %s", safe(d.PaymentStatus, "-")),
		fmt.Sprintf("Kode Booking   : #%d", d.BookingID),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Catatan: harap tunjukkan e-ticket ini saat keberangkatan.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ETICKET_%d.pdf", d.BookingID)
	return buf.Bytes(), filename, nil
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func joinSeats(seats []int) string {
	parts := make([]string, 0, len(seats))
	for _, n := range seats {
		parts = append(parts, strconv.Itoa(n))
	}
	return strings.Join(parts, ",")
}
