package services

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "fleetportal/internal/config"
	"fleetportal/internal/domain"
	"fleetportal/internal/domain/models"
	"fleetportal/internal/metrics"
	"fleetportal/internal/repositories"
	"fleetportal/internal/utils"
)

// BookingService creates and cancels bookings. Seat reservation and the
// booking row are committed together; a lost seat race rolls the whole
// attempt back and names the losing seats so the caller can re-offer.
type BookingService struct {
	TripRepo    repositories.TripRepo
	SeatRepo    repositories.SeatRepo
	BookingRepo repositories.BookingRepo
	DB          *sql.DB
	RequestID   string
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s BookingService) trips() repositories.TripRepo {
	if s.TripRepo.DB != nil {
		return s.TripRepo
	}
	return repositories.TripRepo{DB: s.db()}
}

func (s BookingService) seats() repositories.SeatRepo {
	if s.SeatRepo.DB != nil {
		return s.SeatRepo
	}
	return repositories.SeatRepo{DB: s.db()}
}

func (s BookingService) bookings() repositories.BookingRepo {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepo{DB: s.db()}
}

type CreateBookingInput struct {
	TripID    int64
	Seats     []int
	Passenger models.PassengerInfo
}

func (s BookingService) Create(in CreateBookingInput) (models.Booking, error) {
	var booking models.Booking

	if in.TripID <= 0 {
		return booking, domain.ValidationError{Field: "tripId", Msg: "id tidak valid"}
	}
	if len(in.Seats) == 0 {
		return booking, domain.ValidationError{Field: "seats", Msg: "wajib pilih seat"}
	}
	seen := map[int]bool{}
	for _, n := range in.Seats {
		if n <= 0 {
			return booking, domain.ValidationError{Field: "seats", Msg: fmt.Sprintf("nomor seat tidak valid: %d", n)}
		}
		if seen[n] {
			return booking, domain.ValidationError{Field: "seats", Msg: "seat tidak boleh duplikat"}
		}
		seen[n] = true
	}
	if strings.TrimSpace(in.Passenger.Name) == "" {
		return booking, domain.ValidationError{Field: "passengerName", Msg: "nama pemesan wajib diisi"}
	}
	if strings.TrimSpace(in.Passenger.Phone) == "" {
		return booking, domain.ValidationError{Field: "passengerPhone", Msg: "no HP pemesan wajib diisi"}
	}

	trip, err := s.trips().GetByID(in.TripID)
	if err == sql.ErrNoRows {
		return booking, domain.NotFoundError{Resource: "trip"}
	}
	if err != nil {
		return booking, domain.TransientError{Op: "create_booking", Err: err}
	}

	availableCount, err := s.seats().CountAvailable(in.TripID)
	if err != nil {
		return booking, domain.TransientError{Op: "create_booking", Err: err}
	}
	if !domain.IsBookable(trip, availableCount) {
		return booking, domain.ValidationError{Field: "tripId", Msg: "trip tidak bisa dibooking"}
	}

	existing, err := s.seats().ExistingNumbers(s.db(), in.TripID, in.Seats)
	if err != nil {
		return booking, domain.TransientError{Op: "create_booking", Err: err}
	}
	for _, n := range in.Seats {
		if !existing[n] {
			return booking, domain.ValidationError{Field: "seats", Msg: fmt.Sprintf("seat %d tidak ada di trip ini", n)}
		}
	}

	paymentMethod := strings.ToLower(strings.TrimSpace(in.Passenger.PaymentMethod))
	if paymentMethod != "cash" && paymentMethod != "transfer" && paymentMethod != "qris" {
		paymentMethod = ""
	}
	paymentStatus := ""
	if paymentMethod == "cash" {
		paymentStatus = "Lunas"
	} else if paymentMethod != "" {
		paymentStatus = "Menunggu Validasi"
	}

	booking = models.Booking{
		TripID:          in.TripID,
		PassengerName:   strings.TrimSpace(in.Passenger.Name),
		PassengerPhone:  strings.TrimSpace(in.Passenger.Phone),
		PickupLocation:  strings.TrimSpace(in.Passenger.PickupLocation),
		DropoffLocation: strings.TrimSpace(in.Passenger.DropoffLocation),
		SeatCount:       len(in.Seats),
		PricePerSeat:    trip.Price,
		Total:           trip.Price * int64(len(in.Seats)),
		Status:          models.BookingConfirmed,
		PaymentMethod:   paymentMethod,
		PaymentStatus:   paymentStatus,
	}

	tx, err := s.db().Begin()
	if err != nil {
		return booking, domain.TransientError{Op: "create_booking", Err: err}
	}
	defer tx.Rollback()

	id, err := s.bookings().Insert(tx, booking)
	if err != nil {
		return booking, domain.TransientError{Op: "create_booking", Err: err}
	}

	if err := s.seats().Reserve(tx, in.TripID, id, in.Seats); err != nil {
		if domain.IsSeatUnavailable(err) {
			metrics.SeatConflicts.Inc()
			utils.LogEvent(s.RequestID, "booking", "seat_conflict",
				fmt.Sprintf("trip_id=%d booking_attempt=%d", in.TripID, id))
			return booking, err
		}
		return booking, domain.TransientError{Op: "reserve_seats", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return booking, domain.TransientError{Op: "create_booking", Err: err}
	}

	metrics.BookingsCreated.Inc()
	utils.LogEvent(s.RequestID, "booking", "create",
		fmt.Sprintf("booking_id=%d trip_id=%d seats=%d total=%s", id, in.TripID, len(in.Seats), utils.FormatRupiah(booking.Total)))

	booking.ID = id
	booking.Seats = append([]int{}, in.Seats...)
	return booking, nil
}

// Cancel releases the booking's seats and marks it CANCELLED in one
// transaction. Allowed only while the booking is CONFIRMED and the trip has
// not moved past SCHEDULED.
func (s BookingService) Cancel(bookingID int64) error {
	booking, err := s.bookings().GetByID(bookingID)
	if err == sql.ErrNoRows {
		return domain.NotFoundError{Resource: "booking"}
	}
	if err != nil {
		return domain.TransientError{Op: "cancel_booking", Err: err}
	}

	trip, err := s.trips().GetByID(booking.TripID)
	if err != nil {
		return domain.TransientError{Op: "cancel_booking", Err: err}
	}

	if err := domain.CanCancelBooking(booking, trip); err != nil {
		return err
	}

	tx, err := s.db().Begin()
	if err != nil {
		return domain.TransientError{Op: "cancel_booking", Err: err}
	}
	defer tx.Rollback()

	if err := s.bookings().SetStatus(tx, bookingID, models.BookingCancelled); err != nil {
		return domain.TransientError{Op: "cancel_booking", Err: err}
	}
	if err := s.seats().ReleaseByBooking(tx, booking.TripID, bookingID); err != nil {
		return domain.TransientError{Op: "release_seats", Err: err}
	}
	if err := tx.Commit(); err != nil {
		return domain.TransientError{Op: "cancel_booking", Err: err}
	}

	utils.LogEvent(s.RequestID, "booking", "cancel", fmt.Sprintf("booking_id=%d trip_id=%d", bookingID, booking.TripID))
	return nil
}

func (s BookingService) Get(bookingID int64) (models.Booking, error) {
	booking, err := s.bookings().GetByID(bookingID)
	if err == sql.ErrNoRows {
		return booking, domain.NotFoundError{Resource: "booking"}
	}
	if err != nil {
		return booking, domain.TransientError{Op: "get_booking", Err: err}
	}
	if seats, err := s.seats().NumbersByBooking(s.db(), bookingID); err == nil {
		booking.Seats = seats
	}
	return booking, nil
}
