package store

import (
	"context"
	"errors"
	"time"

	"github.com/recouvro/recouvro/internal/ledger/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite
// today) implement this. It exposes sub-repositories to keep concerns
// tidy and testable, and is the single owner of all persisted rows:
// the filter, export and aggregation paths are stateless readers on
// top of it.
type Store interface {
	Clients() Clients
	Paiements() Paiements
	Historique() Historique
	Connexions() Connexions
	Users() Users

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// Every mutation is paired with its audit entry inside one of these
	// so neither can be committed without the other.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// ClientFilter narrows and pages the client set. All conditions are
// combined with AND. A zero Limit disables pagination (used by the
// CSV export, which always walks the whole filtered set).
type ClientFilter struct {
	Search      string        // case-insensitive substring on nom
	Statut      domain.Statut // empty means all
	Today       time.Time     // reference date for Statut, required when Statut is set
	MontantMin  *int64        // centimes, inclusive
	MontantMax  *int64        // centimes, inclusive
	Limit       int
	Offset      int
}

// HistoriqueFilter narrows and pages the audit log. Date bounds are
// inclusive calendar dates applied to date_modification.
type HistoriqueFilter struct {
	SearchClient string
	Action       domain.Action // empty means all
	DateDebut    *time.Time
	DateFin      *time.Time
	Limit        int
	Offset       int
}

// ConnexionFilter narrows and pages the login/logout trail.
type ConnexionFilter struct {
	SearchUser string
	Action     domain.ConnexionAction // empty means all
	DateDebut  *time.Time
	DateFin    *time.Time
	Limit      int
	Offset     int
}

type Clients interface {
	// GetClientByID returns a client by its storage key.
	GetClientByID(ctx context.Context, id string) (domain.Client, error)

	// GetClientByEmail looks up a client by email (case-insensitive),
	// used to enforce email uniqueness with a useful error.
	GetClientByEmail(ctx context.Context, email string) (domain.Client, error)

	// CreateClient inserts a new client (id is provided by the service via ULID).
	CreateClient(ctx context.Context, c domain.Client) error

	// UpdateClient replaces the mutable fields (nom, telephone, email,
	// montant_du, date_echeance) and bumps updated_at.
	UpdateClient(ctx context.Context, c domain.Client) error

	// ApplyPaiement atomically decrements montant_du by montant,
	// clamped at zero, in a single UPDATE so concurrent payments
	// cannot lose updates.
	ApplyPaiement(ctx context.Context, clientID string, montant int64, now time.Time) error

	// DeleteClient removes the client; paiements cascade per schema.
	DeleteClient(ctx context.Context, clientID string) error

	// ListClients returns the filtered slice ordered by id ascending
	// (ULIDs, so insertion order).
	ListClients(ctx context.Context, f ClientFilter) ([]domain.Client, error)

	// CountClients returns the total matching count ignoring Limit/Offset.
	CountClients(ctx context.Context, f ClientFilter) (int64, error)

	// SumMontantsByStatut returns the outstanding totals split by
	// derived status relative to today.
	SumMontantsByStatut(ctx context.Context, today time.Time) (avenir, retard int64, err error)

	// Repartition returns the dashboard client counts: fully paid,
	// overdue, and total.
	Repartition(ctx context.Context, today time.Time) (payes, enRetard, total int64, err error)

	// TotalDu returns the sum of montant_du across all clients.
	TotalDu(ctx context.Context) (int64, error)
}

type Paiements interface {
	// CreatePaiement stores a new immutable payment row.
	CreatePaiement(ctx context.Context, p domain.Paiement) error

	// ListPaiementsByClient returns a client's payments, newest first.
	ListPaiementsByClient(ctx context.Context, clientID string) ([]domain.Paiement, error)
}

type Historique interface {
	// AppendEntry writes one audit log line. The log is append-only;
	// there is deliberately no update or delete.
	AppendEntry(ctx context.Context, e domain.HistoryEntry) error

	// ListEntries returns the filtered slice, newest first.
	ListEntries(ctx context.Context, f HistoriqueFilter) ([]domain.HistoryEntry, error)

	// CountEntries returns the total matching count ignoring Limit/Offset.
	CountEntries(ctx context.Context, f HistoriqueFilter) (int64, error)
}

type Connexions interface {
	// AppendEvent writes one login/logout line.
	AppendEvent(ctx context.Context, e domain.ConnexionEvent) error

	// ListEvents returns the filtered slice, newest first.
	ListEvents(ctx context.Context, f ConnexionFilter) ([]domain.ConnexionEvent, error)

	// CountEvents returns the total matching count ignoring Limit/Offset.
	CountEvents(ctx context.Context, f ConnexionFilter) (int64, error)

	// DeleteEventsBefore prunes events older than cutoff (housekeeping)
	// and reports how many rows went away.
	DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type Users interface {
	// CreateUser inserts a new user (id is ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername returns a user by its unique username.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// ListUsers returns all users ordered by creation.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// UpdateUserRole changes a user's role.
	UpdateUserRole(ctx context.Context, userID string, role domain.Role) error
}
