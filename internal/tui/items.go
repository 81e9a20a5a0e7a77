package tui

import (
	"fmt"

	"github.com/abi124-max/SmartFare-managementAbi/internal/domain"
	"github.com/abi124-max/SmartFare-managementAbi/internal/utils"
)

// locationItem adapts a Location for the bubbles list.
type locationItem struct {
	loc domain.Location
}

func (i locationItem) Title() string       { return i.loc.Name }
func (i locationItem) Description() string { return i.loc.City + ", " + i.loc.State }
func (i locationItem) FilterValue() string { return i.loc.Name }

// tripItem adapts a TripOffer for the bubbles list.
type tripItem struct {
	offer domain.TripOffer
}

func (i tripItem) Title() string {
	return fmt.Sprintf("%s · %s · %s",
		i.offer.Bus.BusNumber,
		i.offer.Bus.OperatorName,
		utils.FormatRupee(i.offer.Fare))
}

func (i tripItem) Description() string {
	return fmt.Sprintf("%s → %s · %dm · %s · %d/%d seats free",
		utils.FormatClock(i.offer.DepartureTime),
		utils.FormatClock(i.offer.ArrivalTime),
		i.offer.Route.EstimatedDurationMinutes,
		i.offer.Bus.BusType.TypeName,
		i.offer.AvailableSeats,
		i.offer.Bus.TotalSeats)
}

func (i tripItem) FilterValue() string {
	return i.offer.Bus.BusNumber + " " + i.offer.Bus.OperatorName
}
