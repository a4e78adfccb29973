package fleet

import (
	"context"
	"net/http"

	"github.com/rentafleet/fleetapi-go/internal/client/api"
)

// Service maps business operations onto the API client. Every call
// requires an authenticated session.
type Service struct {
	api *api.Client
}

func NewService(c *api.Client) *Service {
	return &Service{api: c}
}

func (s *Service) get(ctx context.Context, path string, out any) error {
	return s.api.Do(ctx, api.RequestDescriptor{
		Method:       http.MethodGet,
		Path:         path,
		RequiresAuth: true,
	}, out)
}

func (s *Service) post(ctx context.Context, path string, body, out any) error {
	return s.api.Do(ctx, api.RequestDescriptor{
		Method:       http.MethodPost,
		Path:         path,
		Body:         body,
		RequiresAuth: true,
	}, out)
}

func (s *Service) put(ctx context.Context, path string, body, out any) error {
	return s.api.Do(ctx, api.RequestDescriptor{
		Method:       http.MethodPut,
		Path:         path,
		Body:         body,
		RequiresAuth: true,
	}, out)
}

func (s *Service) delete(ctx context.Context, path string) error {
	return s.api.Do(ctx, api.RequestDescriptor{
		Method:       http.MethodDelete,
		Path:         path,
		RequiresAuth: true,
	}, nil)
}

// Summary fetches the dashboard aggregates.
func (s *Service) Summary(ctx context.Context) (*DashboardSummary, error) {
	var out DashboardSummary
	if err := s.get(ctx, "/dashboard/summary", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
