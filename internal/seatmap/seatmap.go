// Package seatmap derives a per-seat occupancy layout from an
// availability count. The layout is an approximation for display, not
// an authoritative seat ledger: each seat is marked independently, so
// two derivations for the same trip may differ.
package seatmap

import (
	"math/rand"

	"github.com/abi124-max/SmartFare-managementAbi/internal/domain"
)

// Entry is one derived seat. SeatIndex runs 1..totalSeats.
type Entry struct {
	SeatIndex int
	Occupied  bool
}

// Derive builds the layout for a bus. Each seat is occupied with
// probability (total-available)/total, so a full bus derives fully
// occupied and an empty bus fully free. rng may be nil, in which case
// the shared source is used; tests inject a seeded one.
func Derive(totalSeats, availableSeats int, rng *rand.Rand) []Entry {
	if totalSeats <= 0 {
		return nil
	}
	if availableSeats < 0 {
		availableSeats = 0
	}
	if availableSeats > totalSeats {
		availableSeats = totalSeats
	}

	p := float64(totalSeats-availableSeats) / float64(totalSeats)
	entries := make([]Entry, totalSeats)
	for i := range entries {
		entries[i] = Entry{
			SeatIndex: i + 1,
			Occupied:  randFloat(rng) < p,
		}
	}
	return entries
}

// Select validates a pick against the derived layout. Picking an
// occupied seat fails with SeatUnavailableError; the caller keeps any
// previous selection. A successful pick replaces the prior one.
func Select(entries []Entry, seatIndex int) (Entry, error) {
	for _, e := range entries {
		if e.SeatIndex != seatIndex {
			continue
		}
		if e.Occupied {
			return Entry{}, domain.SeatUnavailableError{SeatIndex: seatIndex}
		}
		return e, nil
	}
	return Entry{}, domain.ValidationError{Field: "seat", Msg: "no such seat"}
}

// OccupiedCount is a display helper for the seat legend.
func OccupiedCount(entries []Entry) int {
	n := 0
	for _, e := range entries {
		if e.Occupied {
			n++
		}
	}
	return n
}

func randFloat(rng *rand.Rand) float64 {
	if rng != nil {
		return rng.Float64()
	}
	return rand.Float64()
}
