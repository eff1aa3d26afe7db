package domain

// UserID is an internal identifier for a user account.
type UserID string

// TripID is an internal identifier for a trip record.
type TripID string

// ParticipantID is an internal identifier for a participant record.
type ParticipantID string

// ExpenseID is an internal identifier for an expense record.
type ExpenseID string

// PaymentID is an internal identifier for a payment record.
type PaymentID string
