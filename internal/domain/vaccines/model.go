package vaccines

import "time"

// Vaccine es una entrada del catálogo global de vacunas.
// Solo staff puede crear/editar/borrar entradas.
type Vaccine struct {
	ID           string
	Name         string
	Manufacturer string
	// Precio, debe ser > 0.
	Price float64
	// Días recomendados entre dosis, debe ser > 0.
	IntervalDays int
	Description  string

	CreatedAt time.Time
	UpdatedAt time.Time
}
