package fleet

import "context"

func (s *Service) Drivers(ctx context.Context) ([]Driver, error) {
	var out []Driver
	if err := s.get(ctx, "/drivers", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) Driver(ctx context.Context, id string) (*Driver, error) {
	var out Driver
	if err := s.get(ctx, "/drivers/"+id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) CreateDriver(ctx context.Context, in DriverInput) (*Driver, error) {
	var out Driver
	if err := s.post(ctx, "/drivers", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) UpdateDriver(ctx context.Context, id string, in DriverInput) (*Driver, error) {
	var out Driver
	if err := s.put(ctx, "/drivers/"+id, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) DeleteDriver(ctx context.Context, id string) error {
	return s.delete(ctx, "/drivers/"+id)
}
