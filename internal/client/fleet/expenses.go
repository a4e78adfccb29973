package fleet

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rentafleet/fleetapi-go/internal/client/api"
)

// Expenses lists expenses, optionally filtered by vehicle.
func (s *Service) Expenses(ctx context.Context, vehicleID string) ([]Expense, error) {
	desc := api.RequestDescriptor{
		Method:       http.MethodGet,
		Path:         "/expenses",
		RequiresAuth: true,
	}
	if vehicleID != "" {
		desc.Query = url.Values{"vehicleId": {vehicleID}}
	}

	var out []Expense
	if err := s.api.Do(ctx, desc, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) CreateExpense(ctx context.Context, in ExpenseInput) (*Expense, error) {
	var out Expense
	if err := s.post(ctx, "/expenses", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
