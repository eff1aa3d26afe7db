package domain

import "time"

// TripParticipant links one trip and one participant. The (TripID,
// ParticipantID) pair is unique: duplicate creation is rejected, never
// overwritten. Authorization for linking and unlinking derives from the
// participant's owner, not the trip.
type TripParticipant struct {
	TripID        TripID
	ParticipantID ParticipantID

	CreatedAt time.Time
}

// TripParticipantDetails is a link expanded with both referenced records,
// returned by the participants-of-trip and trips-of-participant queries.
type TripParticipantDetails struct {
	TripParticipant
	Trip        Trip
	Participant Participant
}
