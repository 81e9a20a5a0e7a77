// Package stub is an in-memory double of the external SmartFare
// booking service, for local development and demos. It mirrors the
// REST surface the wizard consumes; it is not a booking ledger and
// keeps nothing across restarts.
package stub

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/abi124-max/SmartFare-managementAbi/internal/domain"
	"github.com/google/uuid"
)

type busSeed struct {
	bus           domain.Bus
	fare          float64
	departure     string
	baseAvailable int
}

type scheduleKey struct {
	fromID, toID int64
	date         string
}

type stubBooking struct {
	record        domain.BookingRecord
	scheduleID    int64
	transactionID string
}

type Store struct {
	mu sync.Mutex

	locations []domain.Location
	durations map[[2]int64]int

	nextScheduleID int64
	schedules      map[scheduleKey][]int64
	scheduleByID   map[int64]*domain.TripOffer

	bookings    map[string]*stubBooking
	bookedSeats map[int64]map[string]bool
}

// NewStore seeds the Chennai reference data the real backend ships
// with.
func NewStore() *Store {
	return &Store{
		locations: domain.FallbackLocations(),
		durations: map[[2]int64]int{
			{1, 2}: 45, {2, 1}: 45,
			{1, 3}: 35, {3, 1}: 35,
			{1, 4}: 25, {4, 1}: 25,
			{4, 2}: 50, {2, 4}: 50,
			{4, 3}: 40, {3, 4}: 40,
			{2, 3}: 30, {3, 2}: 30,
		},
		schedules:    make(map[scheduleKey][]int64),
		scheduleByID: make(map[int64]*domain.TripOffer),
		bookings:     make(map[string]*stubBooking),
		bookedSeats:  make(map[int64]map[string]bool),
	}
}

func (s *Store) Locations() []domain.Location {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Location, len(s.locations))
	copy(out, s.locations)
	return out
}

func (s *Store) findLocation(id int64) (domain.Location, bool) {
	for _, loc := range s.locations {
		if loc.ID == id {
			return loc, true
		}
	}
	return domain.Location{}, false
}

// Search synthesizes the day's departures for a route on first use and
// serves the same set afterwards, so schedule ids stay stable for
// booking.
func (s *Store) Search(fromID, toID int64, travelDate string) ([]domain.TripOffer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	from, ok := s.findLocation(fromID)
	if !ok {
		return nil, fmt.Errorf("unknown fromLocationId %d", fromID)
	}
	to, ok := s.findLocation(toID)
	if !ok {
		return nil, fmt.Errorf("unknown toLocationId %d", toID)
	}

	key := scheduleKey{fromID: fromID, toID: toID, date: travelDate}
	if ids, ok := s.schedules[key]; ok {
		return s.offersByID(ids), nil
	}

	duration, ok := s.durations[[2]int64{fromID, toID}]
	if !ok {
		// No seeded route; an empty result, not an error.
		s.schedules[key] = nil
		return nil, nil
	}

	ids := make([]int64, 0, len(seedBuses))
	for _, seed := range seedBuses {
		s.nextScheduleID++
		offer := domain.TripOffer{
			ID:  s.nextScheduleID,
			Bus: seed.bus,
			Route: domain.Route{
				FromLocation:             from,
				ToLocation:               to,
				EstimatedDurationMinutes: duration,
			},
			Fare:           seed.fare,
			DepartureTime:  seed.departure,
			ArrivalTime:    addMinutes(seed.departure, duration),
			ScheduleDate:   travelDate,
			AvailableSeats: seed.baseAvailable,
		}
		s.scheduleByID[offer.ID] = &offer
		ids = append(ids, offer.ID)
	}
	s.schedules[key] = ids
	return s.offersByID(ids), nil
}

// offersByID snapshots the live schedule records so seat decrements
// made by bookings show up in later searches.
func (s *Store) offersByID(ids []int64) []domain.TripOffer {
	out := make([]domain.TripOffer, 0, len(ids))
	for _, id := range ids {
		if offer := s.scheduleByID[id]; offer != nil {
			out = append(out, *offer)
		}
	}
	return out
}

// CreateBooking reserves a seat on a schedule. The seat must not be
// taken already; available seats decrement by one.
func (s *Store) CreateBooking(req domain.CreateBookingRequest) (domain.BookingRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(req.PassengerName) == "" || strings.TrimSpace(req.PassengerPhone) == "" {
		return domain.BookingRecord{}, fmt.Errorf("passenger name and phone are required")
	}
	if strings.TrimSpace(req.SeatNumber) == "" {
		return domain.BookingRecord{}, fmt.Errorf("seat number is required")
	}

	schedule, ok := s.scheduleByID[req.ScheduleID]
	if !ok {
		return domain.BookingRecord{}, fmt.Errorf("schedule %d not found", req.ScheduleID)
	}
	if schedule.AvailableSeats <= 0 {
		return domain.BookingRecord{}, fmt.Errorf("bus not available or no seats left")
	}

	taken := s.bookedSeats[req.ScheduleID]
	if taken == nil {
		taken = make(map[string]bool)
		s.bookedSeats[req.ScheduleID] = taken
	}
	if taken[req.SeatNumber] {
		return domain.BookingRecord{}, fmt.Errorf("seat %s is already booked", req.SeatNumber)
	}

	taken[req.SeatNumber] = true
	schedule.AvailableSeats--

	record := domain.BookingRecord{
		BookingReference: newBookingReference(),
		Passenger: domain.Passenger{
			Name:  strings.TrimSpace(req.PassengerName),
			Phone: strings.TrimSpace(req.PassengerPhone),
		},
		SeatNumber:    req.SeatNumber,
		FareAmount:    schedule.Fare,
		PaymentStatus: domain.PaymentPending,
	}
	s.bookings[record.BookingReference] = &stubBooking{
		record:     record,
		scheduleID: req.ScheduleID,
	}
	return record, nil
}

// ConfirmPayment moves a booking to PAID and remembers the
// transaction id. Confirming twice is idempotent.
func (s *Store) ConfirmPayment(bookingReference, transactionID string) (domain.BookingRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[bookingReference]
	if !ok {
		return domain.BookingRecord{}, fmt.Errorf("booking %s not found", bookingReference)
	}
	b.record.PaymentStatus = domain.PaymentPaid
	b.transactionID = transactionID
	return b.record, nil
}

// Booking returns a stored record together with its schedule.
func (s *Store) Booking(bookingReference string) (domain.BookingRecord, domain.TripOffer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[bookingReference]
	if !ok {
		return domain.BookingRecord{}, domain.TripOffer{}, false
	}
	schedule := s.scheduleByID[b.scheduleID]
	if schedule == nil {
		return b.record, domain.TripOffer{}, true
	}
	return b.record, *schedule, true
}

var seedBuses = []busSeed{
	{
		bus:           domain.Bus{BusNumber: "TN09N2345", OperatorName: "MTC Chennai", BusType: domain.BusType{TypeName: "AC Deluxe"}, TotalSeats: 40},
		fare:          45, departure: "06:00", baseAvailable: 35,
	},
	{
		bus:           domain.Bus{BusNumber: "TN09P4567", OperatorName: "TNSTC", BusType: domain.BusType{TypeName: "Ordinary"}, TotalSeats: 50},
		fare:          35, departure: "08:30", baseAvailable: 45,
	},
	{
		bus:           domain.Bus{BusNumber: "TN09Q7890", OperatorName: "Parveen Travels", BusType: domain.BusType{TypeName: "AC Express"}, TotalSeats: 45},
		fare:          40, departure: "14:00", baseAvailable: 40,
	},
	{
		bus:           domain.Bus{BusNumber: "TN09R1234", OperatorName: "KPN Travels", BusType: domain.BusType{TypeName: "Volvo AC"}, TotalSeats: 35},
		fare:          50, departure: "20:00", baseAvailable: 30,
	},
}

func newBookingReference() string {
	return fmt.Sprintf("SF%d%s", time.Now().UnixMilli(), strings.ToUpper(uuid.NewString()[:4]))
}

func addMinutes(hhmm string, minutes int) string {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return hhmm
	}
	return t.Add(time.Duration(minutes) * time.Minute).Format("15:04")
}
