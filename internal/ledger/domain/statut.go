package domain

import "time"

// Statut is the due-date-derived lifecycle state of a client. It is
// recomputed on every read against the current date, never persisted.
type Statut string

const (
	// StatutRetard means the due date is strictly in the past.
	StatutRetard Statut = "retard"
	// StatutAvenir means the due date is today or later.
	StatutAvenir Statut = "avenir"
)

// DateFormat is the date-only wire format used for date_echeance,
// date_paiement and the CSV contract.
const DateFormat = "2006-01-02"

// DeriveStatut maps a due date to a lifecycle state. The comparison is
// date-only: a client due today is still "avenir".
func DeriveStatut(dateEcheance, today time.Time) Statut {
	if DateOnly(dateEcheance).Before(DateOnly(today)) {
		return StatutRetard
	}
	return StatutAvenir
}

// DateOnly truncates t to a calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a UTC date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateFormat, s, time.UTC)
}
