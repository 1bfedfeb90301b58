package vaccinations

import "time"

// Vaccination es un registro del historial: una aplicación de una vacuna a
// una mascota. El historial es append-only en intención; update/delete
// existen solo para correcciones de staff.
type Vaccination struct {
	ID        string
	PetID     string
	VaccineID string
	// Staff que registró la aplicación.
	AppliedByUserID string

	// Fecha de aplicación (granularidad de día).
	AppliedAt time.Time
	// Próxima dosis = AppliedAt + intervalo de la vacuna. Siempre se
	// recalcula server-side, nunca viene del cliente.
	NextDueAt *time.Time

	Batch string // lote
	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DaysUntilDue devuelve los días hasta la próxima dosis (negativo si ya
// venció). ok=false si el registro no tiene próxima dosis.
func (v Vaccination) DaysUntilDue(now time.Time) (int, bool) {
	if v.NextDueAt == nil {
		return 0, false
	}
	days := int(dateOnly(*v.NextDueAt).Sub(dateOnly(now)).Hours() / 24)
	return days, true
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
