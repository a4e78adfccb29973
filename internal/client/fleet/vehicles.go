package fleet

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rentafleet/fleetapi-go/internal/client/api"
)

// Vehicles lists vehicles, optionally filtered by status
// ("available", "rented", "maintenance"). An empty status lists all.
func (s *Service) Vehicles(ctx context.Context, status string) ([]Vehicle, error) {
	desc := api.RequestDescriptor{
		Method:       http.MethodGet,
		Path:         "/vehicles",
		RequiresAuth: true,
	}
	if status != "" {
		desc.Query = url.Values{"status": {status}}
	}

	var out []Vehicle
	if err := s.api.Do(ctx, desc, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) Vehicle(ctx context.Context, id string) (*Vehicle, error) {
	var out Vehicle
	if err := s.get(ctx, "/vehicles/"+id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) CreateVehicle(ctx context.Context, in VehicleInput) (*Vehicle, error) {
	var out Vehicle
	if err := s.post(ctx, "/vehicles", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) UpdateVehicle(ctx context.Context, id string, in VehicleInput) (*Vehicle, error) {
	var out Vehicle
	if err := s.put(ctx, "/vehicles/"+id, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) DeleteVehicle(ctx context.Context, id string) error {
	return s.delete(ctx, "/vehicles/"+id)
}
