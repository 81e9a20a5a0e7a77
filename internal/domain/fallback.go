package domain

// FallbackLocations is served when the location endpoint is
// unreachable, so the wizard still starts. Matches the seed terminals
// of the booking service.
func FallbackLocations() []Location {
	return []Location{
		{ID: 1, Name: "Koyambedu Bus Terminal", City: "Chennai", State: "Tamil Nadu"},
		{ID: 2, Name: "Tambaram Bus Stand", City: "Chennai", State: "Tamil Nadu"},
		{ID: 3, Name: "Velachery Bus Depot", City: "Chennai", State: "Tamil Nadu"},
		{ID: 4, Name: "Broadway Bus Terminal", City: "Chennai", State: "Tamil Nadu"},
	}
}
