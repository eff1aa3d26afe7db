package domain

import "time"

// Trip is the domain representation of a trip.
//
// Trips carry no owner: mutation requires an elevated role, reads are open to
// any authenticated caller, and a degraded public view exists for anonymous
// list/detail requests.
type Trip struct {
	ID          TripID
	Destination string
	Description *string
	StartDate   time.Time
	EndDate     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TripDetails is a trip together with its related records, returned for
// authenticated detail requests.
type TripDetails struct {
	Trip
	Expenses     []Expense
	Participants []Participant
}
