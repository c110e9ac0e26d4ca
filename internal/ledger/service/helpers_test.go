package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/recouvro/recouvro/internal/ledger/domain"
	"github.com/recouvro/recouvro/internal/ledger/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

// testToday pins the clock so status derivation is deterministic.
var testToday = time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testToday }

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newClientService(st *sqlite.Store) *ClientService {
	return &ClientService{Store: st, Now: fixedNow}
}

// mustAddClient inserts a valid client through the service so the
// audit pairing is exercised the same way production writes are.
func mustAddClient(t *testing.T, s *ClientService, nom, email, montant, echeance string) domain.Client {
	t.Helper()

	client, err := s.AddClient(context.Background(), ClientInput{
		Nom:          nom,
		Telephone:    "0701020304",
		Email:        email,
		MontantDu:    montant,
		DateEcheance: echeance,
	}, "testeur")
	require.NoError(t, err)
	return client
}

// recordingNotifier captures dispatched reminders for assertions.
type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
	fail     error
}

func (n *recordingNotifier) Send(_ context.Context, _ domain.Client, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail != nil {
		return n.fail
	}
	n.messages = append(n.messages, message)
	return nil
}
