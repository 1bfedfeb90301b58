package vaccines

import "context"

// IntervalDays expone el intervalo entre dosis de una vacuna.
// Lo consume el módulo de vacunación para calcular la próxima dosis sin
// crear ciclos de imports.
func (s *Service) IntervalDays(ctx context.Context, vaccineID string) (int, error) {
	v, err := s.repo.GetByID(ctx, vaccineID)
	if err != nil {
		return 0, ErrNotFound
	}
	return v.IntervalDays, nil
}
