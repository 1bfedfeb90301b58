package vaccinations

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func recordDue(id string, due time.Time) Vaccination {
	return Vaccination{ID: id, NextDueAt: &due}
}

func TestClassify_Boundaries(t *testing.T) {
	cfg := Config{DueSoonWindowDays: 30}
	today := date(2024, 6, 15)

	cases := []struct {
		name string
		due  time.Time
		want DoseStatus
	}{
		{"yesterday is overdue", date(2024, 6, 14), StatusOverdue},
		{"today is due_soon (borde inferior inclusive)", date(2024, 6, 15), StatusDueSoon},
		{"last day of window is due_soon (borde superior inclusive)", date(2024, 7, 15), StatusDueSoon},
		{"one day past window is current", date(2024, 7, 16), StatusCurrent},
		{"far future is current", date(2025, 6, 15), StatusCurrent},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := cfg.Classify(recordDue("v1", tc.due), today)
			if got != tc.want {
				t.Fatalf("Classify(due=%s, today=%s) = %s, want %s",
					tc.due.Format("2006-01-02"), today.Format("2006-01-02"), got, tc.want)
			}
		})
	}
}

func TestClassify_AnnualIntervalExample(t *testing.T) {
	// Vacuna con intervalo 365 días aplicada el 2023-01-01 vence el
	// 2024-01-01.
	applied := date(2023, 1, 1)
	due := applied.AddDate(0, 0, 365)

	if want := date(2024, 1, 1); !due.Equal(want) {
		t.Fatalf("next due = %s, want %s", due, want)
	}

	cfg := Config{DueSoonWindowDays: 30}
	v := recordDue("v1", due)

	if got := cfg.Classify(v, date(2023, 12, 15)); got != StatusDueSoon {
		t.Fatalf("17 days before due: got %s, want %s", got, StatusDueSoon)
	}
	if got := cfg.Classify(v, date(2024, 1, 2)); got != StatusOverdue {
		t.Fatalf("day after due: got %s, want %s", got, StatusOverdue)
	}
}

func TestClassify_NoNextDueIsUndefined(t *testing.T) {
	cfg := Config{}
	if got := cfg.Classify(Vaccination{ID: "v1"}, date(2024, 6, 15)); got != StatusUndefined {
		t.Fatalf("got %s, want %s", got, StatusUndefined)
	}
}

func TestClassify_DefaultWindow(t *testing.T) {
	// Sin configurar, la ventana es de 7 días.
	cfg := Config{}
	today := date(2024, 6, 1)

	if got := cfg.Classify(recordDue("v1", date(2024, 6, 8)), today); got != StatusDueSoon {
		t.Fatalf("due in 7 days: got %s, want %s", got, StatusDueSoon)
	}
	if got := cfg.Classify(recordDue("v1", date(2024, 6, 9)), today); got != StatusCurrent {
		t.Fatalf("due in 8 days: got %s, want %s", got, StatusCurrent)
	}
}

func TestClassify_IgnoresTimeOfDay(t *testing.T) {
	cfg := Config{DueSoonWindowDays: 7}
	due := time.Date(2024, 6, 15, 23, 59, 0, 0, time.UTC)
	now := time.Date(2024, 6, 15, 0, 1, 0, 0, time.UTC)

	// Mismo día calendario: nunca overdue, aunque la hora ya pasó.
	if got := cfg.Classify(recordDue("v1", due), now.Add(23*time.Hour)); got != StatusDueSoon {
		t.Fatalf("same day: got %s, want %s", got, StatusDueSoon)
	}
}

func TestUpcomingOverdue_PartitionAndOrder(t *testing.T) {
	cfg := Config{DueSoonWindowDays: 30}
	today := date(2024, 6, 15)

	all := []Vaccination{
		recordDue("overdue-2", date(2024, 6, 10)),
		recordDue("current-1", date(2024, 9, 1)),
		recordDue("soon-2", date(2024, 7, 1)),
		recordDue("overdue-1", date(2024, 1, 1)),
		recordDue("soon-1", date(2024, 6, 16)),
		{ID: "undefined-1"},
	}

	upcoming := cfg.Upcoming(all, today)
	overdue := cfg.Overdue(all, today)

	if got, want := idsOf(upcoming), []string{"soon-1", "soon-2"}; !equalIDs(got, want) {
		t.Fatalf("upcoming = %v, want %v", got, want)
	}
	// El más vencido primero.
	if got, want := idsOf(overdue), []string{"overdue-1", "overdue-2"}; !equalIDs(got, want) {
		t.Fatalf("overdue = %v, want %v", got, want)
	}

	// Upcoming y overdue nunca se solapan, y su unión con el resto
	// reconstruye el input completo.
	seen := map[string]int{}
	for _, v := range upcoming {
		seen[v.ID]++
	}
	for _, v := range overdue {
		if seen[v.ID] > 0 {
			t.Fatalf("record %s in both upcoming and overdue", v.ID)
		}
		seen[v.ID]++
	}

	rest := 0
	for _, v := range all {
		switch cfg.Classify(v, today) {
		case StatusCurrent, StatusUndefined:
			rest++
		}
	}
	if len(upcoming)+len(overdue)+rest != len(all) {
		t.Fatalf("partition incomplete: %d + %d + %d != %d",
			len(upcoming), len(overdue), rest, len(all))
	}
}

func idsOf(items []Vaccination) []string {
	out := make([]string, 0, len(items))
	for _, v := range items {
		out = append(out, v.ID)
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
