package domain

import "time"

// Participant is the domain representation of a trip participant.
//
// CreatedBy is the owning user, recorded at creation and immutable. It is nil
// only for legacy rows created before ownership tracking existed; such rows
// are visible to elevated roles only.
type Participant struct {
	ID        ParticipantID
	FirstName string
	LastName  string
	Email     string
	Phone     *string

	CreatedBy *UserID

	CreatedAt time.Time
	UpdatedAt time.Time
}
