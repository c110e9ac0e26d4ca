// Package ledgersdk holds the wire types of the ledger API plus a
// typed HTTP client. The server handlers and external Go consumers
// share these definitions so the contract cannot drift.
package ledgersdk

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Amount is a decimal FCFA amount on the wire. It unmarshals from
// either a JSON number or a string ("1500.50" or "1500,50") so the
// frontend can send whichever it has.
type Amount string

func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if len(s) >= 2 && s[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*a = Amount(v)
		return nil
	}
	*a = Amount(s)
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(a))
}

func (a Amount) String() string { return string(a) }

// ErrorResponse is the standard error envelope. Details carries
// field-level validation messages when Code is "validation_error".
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// MessageResponse is a bare confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ClientRequest creates or replaces a client.
type ClientRequest struct {
	Nom          string `json:"nom"`
	Telephone    string `json:"telephone"`
	Email        string `json:"email"`
	MontantDu    Amount `json:"montant_du"`
	DateEcheance string `json:"date_echeance"` // YYYY-MM-DD
}

// ClientInfo is a client as rendered in listings and detail views.
// Numero is the page-local row number; MontantDu is in francs.
type ClientInfo struct {
	ID           string  `json:"id"`
	Numero       int     `json:"numero,omitempty"`
	Nom          string  `json:"nom"`
	Telephone    string  `json:"telephone"`
	Email        string  `json:"email"`
	MontantDu    float64 `json:"montant_du"`
	DateEcheance string  `json:"date_echeance"`
	Statut       string  `json:"statut"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

// ListClientsResponse is one page of the filtered client set.
type ListClientsResponse struct {
	Clients    []ClientInfo `json:"clients"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	PerPage    int          `json:"per_page"`
	TotalPages int          `json:"total_pages"`
}

// PaiementInfo is one recorded payment.
type PaiementInfo struct {
	ID           string  `json:"id"`
	Montant      float64 `json:"montant"`
	DatePaiement string  `json:"date_paiement"`
	CreatedAt    string  `json:"created_at"`
}

// ClientDetailResponse is one client with its payment history.
type ClientDetailResponse struct {
	Client    ClientInfo     `json:"client"`
	Paiements []PaiementInfo `json:"paiements"`
}

// PaiementRequest records a payment against a client. An empty
// DatePaiement dates the payment today; future dates are rejected.
type PaiementRequest struct {
	Montant      Amount `json:"montant"`
	DatePaiement string `json:"date_paiement,omitempty"`
}

// RelanceRequest triggers a reminder. An empty message lets the server
// compose the default one.
type RelanceRequest struct {
	Message string `json:"message,omitempty"`
}

// ImportIssueInfo describes one rejected CSV row.
type ImportIssueInfo struct {
	Line  int    `json:"ligne"`
	Motif string `json:"motif"`
}

// ImportResponse summarizes a CSV import run.
type ImportResponse struct {
	InsertedCount int               `json:"inserted_count"`
	SkippedCount  int               `json:"skipped_count"`
	Message       string            `json:"message"`
	Issues        []ImportIssueInfo `json:"issues,omitempty"`
}

// HistoriqueEntryInfo is one audit log line.
type HistoriqueEntryInfo struct {
	ID               string `json:"id"`
	Action           string `json:"action"`
	ClientID         string `json:"client_id,omitempty"`
	ClientNom        string `json:"client_nom"`
	Details          string `json:"details"`
	ModifiePar       string `json:"modifie_par"`
	DateModification string `json:"date_modification"`
}

// ListHistoriqueResponse is one page of the audit log, newest first.
type ListHistoriqueResponse struct {
	Historique []HistoriqueEntryInfo `json:"historique"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	PerPage    int                   `json:"per_page"`
	TotalPages int                   `json:"total_pages"`
}

// ConnexionRequest records a login or logout for a known user.
type ConnexionRequest struct {
	Username string `json:"username"`
	Action   string `json:"action"` // "login" or "logout"
}

// ConnexionInfo is one line of the login/logout trail.
type ConnexionInfo struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	Username   string `json:"username"`
	Action     string `json:"action"`
	DateAction string `json:"date_action"`
}

// ListConnexionsResponse is one page of the connexion trail.
type ListConnexionsResponse struct {
	Connexions []ConnexionInfo `json:"connexions"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PerPage    int             `json:"per_page"`
	TotalPages int             `json:"total_pages"`
}

// CreateUserRequest registers an operator account. Role defaults to
// "user" when omitted.
type CreateUserRequest struct {
	Username string `json:"username"`
	Role     string `json:"role,omitempty"`
}

// UpdateRoleRequest changes a user's role.
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// UserInfo is one operator account.
type UserInfo struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

// ListUsersResponse lists all operator accounts.
type ListUsersResponse struct {
	Users []UserInfo `json:"users"`
}

// MontantsParStatut splits the outstanding total by derived status.
type MontantsParStatut struct {
	Avenir float64 `json:"avenir"`
	Retard float64 `json:"retard"`
}

// RepartitionClients counts clients by settlement state.
type RepartitionClients struct {
	Payes    int64 `json:"payes"`
	EnRetard int64 `json:"en_retard"`
	Total    int64 `json:"total"`
}

// StatsResponse is the dashboard aggregate. Amounts are in francs and
// total_du always equals avenir + retard.
type StatsResponse struct {
	MontantsParStatut  MontantsParStatut  `json:"montants_par_statut"`
	RepartitionClients RepartitionClients `json:"repartition_clients"`
	TotalDu            float64            `json:"total_du"`
}

// HealthChecks reports the state of critical dependencies.
type HealthChecks struct {
	Database string `json:"database"`
}

// HealthResponse is returned by the liveness and readiness probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// FormatFrancs renders a franc amount the way the API emits it, mostly
// useful in tests.
func FormatFrancs(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
