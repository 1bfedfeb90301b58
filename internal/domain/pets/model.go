package pets

import "time"

// Pet representa una mascota registrada en la clínica.
// Siempre pertenece a exactamente un dueño (OwnerUserID).
type Pet struct {
	ID          string
	OwnerUserID string

	Name    string
	Species string // ej: perro, gato
	Breed   string
	// Peso en kg, debe ser > 0.
	WeightKg  float64
	BirthDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AgeDays devuelve la edad en días. ok=false si no hay fecha de nacimiento.
func (p Pet) AgeDays(now time.Time) (int, bool) {
	if p.BirthDate == nil {
		return 0, false
	}
	days := int(dateOnly(now).Sub(dateOnly(*p.BirthDate)).Hours() / 24)
	return days, true
}

// AgeYears devuelve la edad en años completos (días / 365, como la clínica
// la venía calculando).
func (p Pet) AgeYears(now time.Time) (int, bool) {
	days, ok := p.AgeDays(now)
	if !ok {
		return 0, false
	}
	return days / 365, true
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
