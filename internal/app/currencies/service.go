package currencies

import (
	"context"
	"errors"
	"regexp"

	"github.com/wakacyjne/trip-expense-api/internal/app/apperror"
	"github.com/wakacyjne/trip-expense-api/internal/app/authz"
	"github.com/wakacyjne/trip-expense-api/internal/domain"
	clockport "github.com/wakacyjne/trip-expense-api/internal/ports/out/clock"
	"github.com/wakacyjne/trip-expense-api/internal/ports/out/currencyrepo"
)

var codePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// Service covers exchange rates against PLN. Upsert is the write path fed by
// the external rate importer; rates are read back by payment conversion.
type Service struct {
	currencies currencyrepo.Repository
	clk        clockport.Clock
}

func NewService(currencies currencyrepo.Repository, clk clockport.Clock) *Service {
	return &Service{currencies: currencies, clk: clk}
}

// Upsert creates a currency or replaces its rate. Elevated roles only.
func (s *Service) Upsert(ctx context.Context, caller domain.UserMetadata, code string, rate float64) (domain.Currency, error) {
	if !authz.CanMutateGlobal(caller.Role) {
		return domain.Currency{}, apperror.Forbidden("Only coordinators and administrators may manage exchange rates")
	}
	if !codePattern.MatchString(code) {
		return domain.Currency{}, apperror.Validation(
			"Invalid currency code - must be 3 uppercase letters",
			map[string]any{"code": code},
		)
	}
	if rate <= 0 {
		return domain.Currency{}, apperror.Validation("invalid rate", map[string]any{"rate": "must be positive"})
	}

	return s.currencies.Upsert(ctx, domain.Currency{
		Code:      code,
		Rate:      rate,
		UpdatedAt: s.clk.Now(),
	})
}

func (s *Service) GetAll(ctx context.Context) ([]domain.Currency, error) {
	return s.currencies.List(ctx)
}

func (s *Service) Get(ctx context.Context, code string) (domain.Currency, error) {
	c, err := s.currencies.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, currencyrepo.ErrNotFound) {
			return domain.Currency{}, apperror.NotFound("CURRENCY_NOT_FOUND", "Currency not found")
		}
		return domain.Currency{}, err
	}
	return c, nil
}
