package payments

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/wakacyjne/trip-expense-api/internal/app/apperror"
	"github.com/wakacyjne/trip-expense-api/internal/domain"
	clockport "github.com/wakacyjne/trip-expense-api/internal/ports/out/clock"
	"github.com/wakacyjne/trip-expense-api/internal/ports/out/currencyrepo"
	"github.com/wakacyjne/trip-expense-api/internal/ports/out/paymentrepo"
)

// Service records payments in foreign currencies, converting to PLN with the
// rate stored at creation time.
type Service struct {
	payments   paymentrepo.Repository
	currencies currencyrepo.Repository
	clk        clockport.Clock

	newPaymentID func() domain.PaymentID
}

func NewService(payments paymentrepo.Repository, currencies currencyrepo.Repository, clk clockport.Clock) *Service {
	return &Service{
		payments:   payments,
		currencies: currencies,
		clk:        clk,
		newPaymentID: func() domain.PaymentID {
			return domain.PaymentID(uuid.NewString())
		},
	}
}

type CreatePaymentInput struct {
	Amount       float64
	CurrencyCode string
}

func (s *Service) Create(ctx context.Context, in CreatePaymentInput) (domain.Payment, error) {
	if in.Amount <= 0 {
		return domain.Payment{}, apperror.Validation("invalid amount", map[string]any{"amount": "must be positive"})
	}

	code := strings.ToUpper(strings.TrimSpace(in.CurrencyCode))
	c, err := s.currencies.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, currencyrepo.ErrNotFound) {
			return domain.Payment{}, &apperror.Error{
				Status:  400,
				Code:    "UNSUPPORTED_CURRENCY",
				Message: "Unsupported currency",
				Details: map[string]any{"currencyCode": code},
			}
		}
		return domain.Payment{}, err
	}

	p := domain.Payment{
		ID:           s.newPaymentID(),
		Amount:       in.Amount,
		CurrencyCode: c.Code,
		AmountPLN:    in.Amount * c.Rate,
		CreatedAt:    s.clk.Now(),
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return domain.Payment{}, err
	}
	return p, nil
}

func (s *Service) GetAll(ctx context.Context) ([]domain.Payment, error) {
	return s.payments.List(ctx)
}

func (s *Service) Get(ctx context.Context, id domain.PaymentID) (domain.Payment, error) {
	p, err := s.payments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, paymentrepo.ErrNotFound) {
			return domain.Payment{}, apperror.NotFound("PAYMENT_NOT_FOUND", "Payment not found")
		}
		return domain.Payment{}, err
	}
	return p, nil
}
