package domain

// Location is immutable reference data fetched once per session.
type Location struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	City  string `json:"city"`
	State string `json:"state"`
}

type BusType struct {
	TypeName string `json:"typeName"`
}

type Bus struct {
	BusNumber    string  `json:"busNumber"`
	OperatorName string  `json:"operatorName"`
	BusType      BusType `json:"busType"`
	TotalSeats   int     `json:"totalSeats"`
}

type Route struct {
	FromLocation             Location `json:"fromLocation"`
	ToLocation               Location `json:"toLocation"`
	EstimatedDurationMinutes int      `json:"estimatedDurationMinutes"`
}

// TripOffer is one scheduled departure matching a search.
// AvailableSeats is never larger than Bus.TotalSeats.
type TripOffer struct {
	ID             int64   `json:"id"`
	Bus            Bus     `json:"bus"`
	Route          Route   `json:"route"`
	Fare           float64 `json:"fare"`
	DepartureTime  string  `json:"departureTime"`
	ArrivalTime    string  `json:"arrivalTime"`
	ScheduleDate   string  `json:"scheduleDate"`
	AvailableSeats int     `json:"availableSeats"`
}

// PassengerInput holds the passenger form fields prior to booking.
type PassengerInput struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required,smartfare_phone"`
}

type Passenger struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Payment statuses echoed by the booking service.
const (
	PaymentPending = "PENDING"
	PaymentPaid    = "PAID"
)

// BookingRecord is created server-side and treated as immutable on the
// client except for PaymentStatus, which is refreshed after payment
// confirmation.
type BookingRecord struct {
	BookingReference string    `json:"bookingReference"`
	Passenger        Passenger `json:"passenger"`
	SeatNumber       string    `json:"seatNumber"`
	FareAmount       float64   `json:"fareAmount"`
	PaymentStatus    string    `json:"paymentStatus"`
}

// CreateBookingRequest is the payload for the booking-creation endpoint.
type CreateBookingRequest struct {
	PassengerName  string `json:"passengerName"`
	PassengerPhone string `json:"passengerPhone"`
	ScheduleID     int64  `json:"scheduleId"`
	SeatNumber     string `json:"seatNumber"`
}
