package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wakacyjne/trip-expense-api/internal/app/payments"
	"github.com/wakacyjne/trip-expense-api/internal/domain"
)

func (s *Server) handleListCurrencies(w http.ResponseWriter, r *http.Request) {
	cs, err := s.Currencies.GetAll(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	out := make([]currencyResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, currencyFromDomain(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetCurrency(w http.ResponseWriter, r *http.Request) {
	c, err := s.Currencies.Get(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, currencyFromDomain(c))
}

func (s *Server) handleUpsertCurrency(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	var req upsertCurrencyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	c, err := s.Currencies.Upsert(r.Context(), caller, req.Code, req.Rate)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, currencyFromDomain(c))
}

func (s *Server) handleListPayments(w http.ResponseWriter, r *http.Request) {
	ps, err := s.Payments.GetAll(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	out := make([]paymentResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, paymentFromDomain(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetPayment(w http.ResponseWriter, r *http.Request) {
	p, err := s.Payments.Get(r.Context(), domain.PaymentID(chi.URLParam(r, "id")))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, paymentFromDomain(p))
}

func (s *Server) handleCreatePayment(w http.ResponseWriter, r *http.Request) {
	var req createPaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := s.Payments.Create(r.Context(), payments.CreatePaymentInput{
		Amount:       req.Amount,
		CurrencyCode: req.CurrencyCode,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, paymentFromDomain(p))
}
