package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/nullable"

	"github.com/wakacyjne/trip-expense-api/internal/app/expenses"
	"github.com/wakacyjne/trip-expense-api/internal/domain"
)

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	es, err := s.Expenses.List(r.Context(), caller)
	if err != nil {
		handleError(w, r, err)
		return
	}
	out := make([]expenseResponse, 0, len(es))
	for _, e := range es {
		out = append(out, expenseFromDomain(e))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	e, err := s.Expenses.Get(r.Context(), caller, domain.ExpenseID(chi.URLParam(r, "id")))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, expenseFromDomain(e))
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	var req createExpenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	e, err := s.Expenses.Create(r.Context(), caller, expenses.CreateExpenseInput{
		TripID:      domain.TripID(req.TripID),
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, expenseFromDomain(e))
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())

	var req updateExpenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	in := expenses.UpdateExpenseInput{
		TripID:      expensesOptTripID(req.TripID),
		Amount:      expensesOptFloat(req.Amount),
		Category:    expensesOptString(req.Category),
		Description: expensesOptString(req.Description),
	}

	e, err := s.Expenses.Update(r.Context(), caller, domain.ExpenseID(chi.URLParam(r, "id")), in)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, expenseFromDomain(e))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFromContext(r.Context())
	if err := s.Expenses.Delete(r.Context(), caller, domain.ExpenseID(chi.URLParam(r, "id"))); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func expensesOptString(n nullable.Nullable[string]) expenses.Optional[string] {
	if !n.IsSpecified() {
		return expenses.Unspecified[string]()
	}
	if n.IsNull() {
		return expenses.Null[string]()
	}
	v, _ := n.Get()
	return expenses.Some(v)
}

func expensesOptFloat(n nullable.Nullable[float64]) expenses.Optional[float64] {
	if !n.IsSpecified() {
		return expenses.Unspecified[float64]()
	}
	if n.IsNull() {
		return expenses.Null[float64]()
	}
	v, _ := n.Get()
	return expenses.Some(v)
}

func expensesOptTripID(n nullable.Nullable[string]) expenses.Optional[domain.TripID] {
	if !n.IsSpecified() {
		return expenses.Unspecified[domain.TripID]()
	}
	if n.IsNull() {
		return expenses.Null[domain.TripID]()
	}
	v, _ := n.Get()
	return expenses.Some(domain.TripID(v))
}
