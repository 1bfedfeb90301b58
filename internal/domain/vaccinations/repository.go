package vaccinations

import "context"

type Repository interface {
	Create(ctx context.Context, v Vaccination) error
	Update(ctx context.Context, v Vaccination) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Vaccination, error)
	ListAll(ctx context.Context) ([]Vaccination, error)
	ListByPet(ctx context.Context, petID string) ([]Vaccination, error)
}

// PetDirectory resuelve datos mínimos de mascotas sin importar el paquete
// pets (evita ciclos). Lo implementa pets.Service.
type PetDirectory interface {
	OwnerOf(ctx context.Context, petID string) (string, error)
	ListOwnedPetIDs(ctx context.Context, ownerUserID string) ([]string, error)
}

// VaccineCatalog resuelve el intervalo entre dosis. Lo implementa
// vaccines.Service.
type VaccineCatalog interface {
	IntervalDays(ctx context.Context, vaccineID string) (int, error)
}
