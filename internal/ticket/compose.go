package ticket

import (
	"github.com/abi124-max/SmartFare-managementAbi/internal/domain"
	"github.com/abi124-max/SmartFare-managementAbi/internal/utils"
)

// Composition is the off-screen ticket layout handed to the codec. It
// mirrors the printed e-ticket: header, booking reference, passenger
// block, journey block, detail grid, boarding-pass QR and footer.
type Composition struct {
	Title    string
	Subtitle string

	BookingReference string

	Passenger [][2]string
	Journey   [][2]string
	Details   [][2]string

	FareLine      string
	PaymentStatus string

	QRCaption string
	Footer    string
}

// compose builds the layout from a confirmed booking and its trip.
// Pure assembly; nothing here can fail.
func compose(record domain.BookingRecord, trip domain.TripOffer) Composition {
	status := record.PaymentStatus
	if status == "" {
		status = domain.PaymentPaid
	}

	return Composition{
		Title:            "SMART FARE",
		Subtitle:         "Bus E-Ticket",
		BookingReference: record.BookingReference,
		Passenger: [][2]string{
			{"Passenger", record.Passenger.Name},
			{"Phone", record.Passenger.Phone},
		},
		Journey: [][2]string{
			{"From", trip.Route.FromLocation.Name},
			{"To", trip.Route.ToLocation.Name},
			{"Departure", utils.FormatClock(trip.DepartureTime)},
			{"Arrival", utils.FormatClock(trip.ArrivalTime)},
		},
		Details: [][2]string{
			{"Bus", trip.Bus.BusNumber},
			{"Operator", trip.Bus.OperatorName},
			{"Seat", record.SeatNumber},
			{"Date", trip.ScheduleDate},
		},
		FareLine:      "Total Fare: " + utils.FormatRupee(record.FareAmount),
		PaymentStatus: status,
		QRCaption:     "Show this code to the conductor for boarding",
		Footer:        "Thank you for choosing Smart Fare",
	}
}

// shareText is the plain-text summary used by the share flow and the
// text artifact fallback.
func shareText(record domain.BookingRecord, trip domain.TripOffer) string {
	return "Smart Fare Bus Ticket\n\n" +
		"Booking: " + record.BookingReference + "\n" +
		"Passenger: " + record.Passenger.Name + "\n" +
		"Bus: " + trip.Bus.BusNumber + "\n" +
		"Seat: " + record.SeatNumber + "\n" +
		"Route: " + trip.Route.FromLocation.Name + " -> " + trip.Route.ToLocation.Name + "\n" +
		"Date: " + trip.ScheduleDate + " " + utils.FormatClock(trip.DepartureTime) + "\n" +
		"Fare: " + utils.FormatRupee(record.FareAmount) + "\n"
}
