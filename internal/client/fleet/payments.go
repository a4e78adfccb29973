package fleet

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rentafleet/fleetapi-go/internal/client/api"
)

// Payments lists payments, optionally filtered by contract.
func (s *Service) Payments(ctx context.Context, contractID string) ([]Payment, error) {
	desc := api.RequestDescriptor{
		Method:       http.MethodGet,
		Path:         "/payments",
		RequiresAuth: true,
	}
	if contractID != "" {
		desc.Query = url.Values{"contractId": {contractID}}
	}

	var out []Payment
	if err := s.api.Do(ctx, desc, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) CreatePayment(ctx context.Context, in PaymentInput) (*Payment, error) {
	var out Payment
	if err := s.post(ctx, "/payments", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
