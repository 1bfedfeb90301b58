package pets

import "context"

// OwnerOf expone el ownerUserID de una mascota sin aplicar reglas de acceso.
// Lo consume el módulo de vacunación para resolver visibilidad sin crear
// ciclos de imports.
func (s *Service) OwnerOf(ctx context.Context, petID string) (string, error) {
	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return "", ErrNotFound
	}
	return p.OwnerUserID, nil
}

// ListOwnedPetIDs devuelve los IDs de las mascotas de un dueño.
func (s *Service) ListOwnedPetIDs(ctx context.Context, ownerUserID string) ([]string, error) {
	items, err := s.repo.ListByOwner(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(items))
	for _, p := range items {
		ids = append(ids, p.ID)
	}
	return ids, nil
}
