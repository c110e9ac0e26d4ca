package domain

import "time"

// Paiement records money received against a client's balance. Rows are
// immutable once written and are only removed by the cascade when
// their client is deleted.
type Paiement struct {
	ID           string
	ClientID     string
	Montant      int64     // centimes FCFA, > 0
	DatePaiement time.Time // date only, never in the future
	CreatedAt    time.Time
}
