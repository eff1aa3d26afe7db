package httpapi

import (
	"time"

	"github.com/oapi-codegen/nullable"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/wakacyjne/trip-expense-api/internal/domain"
)

// Request and response DTOs. PATCH bodies use nullable.Nullable so handlers
// can distinguish omitted fields from explicit nulls; dates travel as
// YYYY-MM-DD.

type loginRequest struct {
	Email    openapi_types.Email `json:"email"`
	Password string              `json:"password"`
}

type registerRequest struct {
	Email    openapi_types.Email `json:"email"`
	Password string              `json:"password"`
	Name     *string             `json:"name,omitempty"`
	AboutMe  *string             `json:"aboutMe,omitempty"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type updateProfileRequest struct {
	Name        nullable.Nullable[string] `json:"name,omitempty"`
	AboutMe     nullable.Nullable[string] `json:"aboutMe,omitempty"`
	TargetEmail *openapi_types.Email      `json:"targetEmail,omitempty"`
}

type profileResponse struct {
	Email   string  `json:"email"`
	Name    *string `json:"name"`
	AboutMe *string `json:"aboutMe"`
}

type tripResponse struct {
	ID          string              `json:"id"`
	Destination string              `json:"destination"`
	Description *string             `json:"description"`
	StartDate   openapi_types.Date  `json:"startDate"`
	EndDate     *openapi_types.Date `json:"endDate"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`

	Expenses     []expenseResponse     `json:"expenses,omitempty"`
	Participants []participantResponse `json:"participants,omitempty"`
}

type createTripRequest struct {
	Destination string              `json:"destination"`
	Description *string             `json:"description,omitempty"`
	StartDate   openapi_types.Date  `json:"startDate"`
	EndDate     *openapi_types.Date `json:"endDate,omitempty"`
}

type updateTripRequest struct {
	Destination nullable.Nullable[string]             `json:"destination,omitempty"`
	Description nullable.Nullable[string]             `json:"description,omitempty"`
	StartDate   nullable.Nullable[openapi_types.Date] `json:"startDate,omitempty"`
	EndDate     nullable.Nullable[openapi_types.Date] `json:"endDate,omitempty"`
}

type participantResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	CreatedBy *string   `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type createParticipantRequest struct {
	FirstName string              `json:"firstName"`
	LastName  string              `json:"lastName"`
	Email     openapi_types.Email `json:"email"`
	Phone     *string             `json:"phone,omitempty"`
}

type updateParticipantRequest struct {
	FirstName nullable.Nullable[string]              `json:"firstName,omitempty"`
	LastName  nullable.Nullable[string]              `json:"lastName,omitempty"`
	Email     nullable.Nullable[openapi_types.Email] `json:"email,omitempty"`
	Phone     nullable.Nullable[string]              `json:"phone,omitempty"`
}

type expenseResponse struct {
	ID          string    `json:"id"`
	TripID      string    `json:"tripId"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	CreatedBy   *string   `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type createExpenseRequest struct {
	TripID      string  `json:"tripId"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

type updateExpenseRequest struct {
	TripID      nullable.Nullable[string]  `json:"tripId,omitempty"`
	Amount      nullable.Nullable[float64] `json:"amount,omitempty"`
	Category    nullable.Nullable[string]  `json:"category,omitempty"`
	Description nullable.Nullable[string]  `json:"description,omitempty"`
}

type createTripLinkRequest struct {
	TripID        string `json:"tripId"`
	ParticipantID string `json:"participantId"`
}

type tripLinkResponse struct {
	TripID        string    `json:"tripId"`
	ParticipantID string    `json:"participantId"`
	CreatedAt     time.Time `json:"createdAt"`
}

type tripLinkDetailsResponse struct {
	Trip        tripResponse        `json:"trip"`
	Participant participantResponse `json:"participant"`
	CreatedAt   time.Time           `json:"createdAt"`
}

type upsertCurrencyRequest struct {
	Code string  `json:"code"`
	Rate float64 `json:"rate"`
}

type currencyResponse struct {
	Code      string    `json:"code"`
	Rate      float64   `json:"rate"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type createPaymentRequest struct {
	Amount       float64 `json:"amount"`
	CurrencyCode string  `json:"currencyCode"`
}

type paymentResponse struct {
	ID           string    `json:"id"`
	Amount       float64   `json:"amount"`
	CurrencyCode string    `json:"currencyCode"`
	AmountPLN    float64   `json:"amountPln"`
	CreatedAt    time.Time `json:"createdAt"`
}

func tripFromDomain(t domain.Trip) tripResponse {
	out := tripResponse{
		ID:          string(t.ID),
		Destination: t.Destination,
		Description: t.Description,
		StartDate:   openapi_types.Date{Time: t.StartDate},
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.EndDate != nil {
		out.EndDate = &openapi_types.Date{Time: *t.EndDate}
	}
	return out
}

func tripDetailsFromDomain(d domain.TripDetails) tripResponse {
	out := tripFromDomain(d.Trip)
	out.Expenses = make([]expenseResponse, 0, len(d.Expenses))
	for _, e := range d.Expenses {
		out.Expenses = append(out.Expenses, expenseFromDomain(e))
	}
	out.Participants = make([]participantResponse, 0, len(d.Participants))
	for _, p := range d.Participants {
		out.Participants = append(out.Participants, participantFromDomain(p))
	}
	return out
}

func participantFromDomain(p domain.Participant) participantResponse {
	return participantResponse{
		ID:        string(p.ID),
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Phone:     p.Phone,
		CreatedBy: userIDPtr(p.CreatedBy),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func expenseFromDomain(e domain.Expense) expenseResponse {
	return expenseResponse{
		ID:          string(e.ID),
		TripID:      string(e.TripID),
		Amount:      e.Amount,
		Category:    string(e.Category),
		Description: e.Description,
		CreatedBy:   userIDPtr(e.CreatedBy),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func tripLinkFromDomain(l domain.TripParticipant) tripLinkResponse {
	return tripLinkResponse{
		TripID:        string(l.TripID),
		ParticipantID: string(l.ParticipantID),
		CreatedAt:     l.CreatedAt,
	}
}

func tripLinkDetailsFromDomain(d domain.TripParticipantDetails) tripLinkDetailsResponse {
	return tripLinkDetailsResponse{
		Trip:        tripFromDomain(d.Trip),
		Participant: participantFromDomain(d.Participant),
		CreatedAt:   d.CreatedAt,
	}
}

func currencyFromDomain(c domain.Currency) currencyResponse {
	return currencyResponse{Code: c.Code, Rate: c.Rate, UpdatedAt: c.UpdatedAt}
}

func paymentFromDomain(p domain.Payment) paymentResponse {
	return paymentResponse{
		ID:           string(p.ID),
		Amount:       p.Amount,
		CurrencyCode: p.CurrencyCode,
		AmountPLN:    p.AmountPLN,
		CreatedAt:    p.CreatedAt,
	}
}

func userIDPtr(id *domain.UserID) *string {
	if id == nil {
		return nil
	}
	s := string(*id)
	return &s
}
