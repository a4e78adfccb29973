package fleet

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rentafleet/fleetapi-go/internal/client/api"
)

// Contracts lists rental contracts, optionally filtered by status
// ("active", "ended", "terminated"). An empty status lists all.
func (s *Service) Contracts(ctx context.Context, status string) ([]Contract, error) {
	desc := api.RequestDescriptor{
		Method:       http.MethodGet,
		Path:         "/contracts",
		RequiresAuth: true,
	}
	if status != "" {
		desc.Query = url.Values{"status": {status}}
	}

	var out []Contract
	if err := s.api.Do(ctx, desc, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) Contract(ctx context.Context, id string) (*Contract, error) {
	var out Contract
	if err := s.get(ctx, "/contracts/"+id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) CreateContract(ctx context.Context, in ContractInput) (*Contract, error) {
	var out Contract
	if err := s.post(ctx, "/contracts", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EndContract closes an active contract.
func (s *Service) EndContract(ctx context.Context, id string) (*Contract, error) {
	var out Contract
	if err := s.post(ctx, "/contracts/"+id+"/end", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
