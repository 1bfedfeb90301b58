package vaccinations

import (
	"sort"
	"time"
)

// DoseStatus es el estado derivado de un registro respecto a la fecha
// actual. Se recalcula en cada lectura, nunca se persiste (evita estados
// obsoletos).
// @Enum current, due_soon, overdue, undefined
type DoseStatus string

const (
	StatusCurrent   DoseStatus = "current"
	StatusDueSoon   DoseStatus = "due_soon"
	StatusOverdue   DoseStatus = "overdue"
	StatusUndefined DoseStatus = "undefined" // sin próxima dosis resoluble
)

// DefaultDueSoonWindowDays es la ventana por defecto para clasificar una
// dosis como "due_soon".
const DefaultDueSoonWindowDays = 7

// Config agrupa los parámetros del dominio de vacunación. Se pasa explícita
// al constructor del service, sin estado global.
type Config struct {
	DueSoonWindowDays int
}

func (c Config) windowDays() int {
	if c.DueSoonWindowDays <= 0 {
		return DefaultDueSoonWindowDays
	}
	return c.DueSoonWindowDays
}

// Classify es una función pura sobre fechas con granularidad de día:
//   - overdue   si nextDue < hoy
//   - due_soon  si hoy <= nextDue <= hoy + ventana (ambos bordes inclusive)
//   - current   en el resto de los casos
//   - undefined si el registro no tiene próxima dosis
func (c Config) Classify(v Vaccination, now time.Time) DoseStatus {
	if v.NextDueAt == nil {
		return StatusUndefined
	}

	due := dateOnly(*v.NextDueAt)
	today := dateOnly(now)

	if due.Before(today) {
		return StatusOverdue
	}
	if !due.After(today.AddDate(0, 0, c.windowDays())) {
		return StatusDueSoon
	}
	return StatusCurrent
}

// Upcoming filtra los registros con estado due_soon, ordenados por próxima
// dosis ascendente.
func (c Config) Upcoming(records []Vaccination, now time.Time) []Vaccination {
	return c.filterByStatus(records, now, StatusDueSoon)
}

// Overdue filtra los registros vencidos, ordenados por próxima dosis
// ascendente (el más vencido primero).
func (c Config) Overdue(records []Vaccination, now time.Time) []Vaccination {
	return c.filterByStatus(records, now, StatusOverdue)
}

func (c Config) filterByStatus(records []Vaccination, now time.Time, want DoseStatus) []Vaccination {
	out := make([]Vaccination, 0)
	for _, v := range records {
		if c.Classify(v, now) == want {
			out = append(out, v)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].NextDueAt.Before(*out[j].NextDueAt)
	})

	return out
}
