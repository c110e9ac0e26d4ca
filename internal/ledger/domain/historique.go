package domain

import "time"

// Action identifies the kind of mutation an audit entry records.
type Action string

const (
	ActionAjout        Action = "ajout"
	ActionModification Action = "modification"
	ActionPaiement     Action = "paiement"
	ActionRelance      Action = "relance"
	ActionSuppression  Action = "suppression"
	ActionImport       Action = "import"
)

// Valid reports whether a is a known audit action.
func (a Action) Valid() bool {
	switch a {
	case ActionAjout, ActionModification, ActionPaiement,
		ActionRelance, ActionSuppression, ActionImport:
		return true
	}
	return false
}

// HistoryEntry is one line of the append-only audit log. ClientNom is
// a snapshot taken when the action happened so the entry stays
// readable after the client row is gone. ClientID is nil for
// batch-level entries (CSV import).
type HistoryEntry struct {
	ID               string
	Action           Action
	ClientID         *string
	ClientNom        string
	Details          string
	ModifiePar       string
	DateModification time.Time
}

// SystemActor is recorded when no human actor identity was supplied.
const SystemActor = "Système"
