package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/recouvro/recouvro/internal/ledger/domain"
	"github.com/recouvro/recouvro/internal/ledger/store"
	"github.com/recouvro/recouvro/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()

	st, err := NewStore(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func testClient(email string, montant int64, echeance time.Time) domain.Client {
	now := time.Now().UTC()
	return domain.Client{
		ID:           string(idx.New()),
		Nom:          "Test Client",
		Telephone:    "+2250701020304",
		Email:        email,
		MontantDu:    montant,
		DateEcheance: domain.DateOnly(echeance),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newStore(t)

	client := testClient("tx@example.ci", 1000, time.Now())
	boom := errors.New("boom")

	err := st.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Clients().CreateClient(ctx, client))
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = st.Clients().GetClientByID(ctx, client.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTxCommits(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newStore(t)

	client := testClient("commit@example.ci", 1000, time.Now())

	require.NoError(t, st.WithTx(ctx, func(tx store.Tx) error {
		return tx.Clients().CreateClient(ctx, client)
	}))

	got, err := st.Clients().GetClientByID(ctx, client.ID)
	require.NoError(t, err)
	require.Equal(t, client.Email, got.Email)
	require.Equal(t, client.MontantDu, got.MontantDu)
}

func TestUniqueEmailMapsToAlreadyExists(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newStore(t)

	require.NoError(t, st.Clients().CreateClient(ctx, testClient("unique@example.ci", 1, time.Now())))

	err := st.Clients().CreateClient(ctx, testClient("UNIQUE@example.ci", 2, time.Now()))
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestDeleteCascadesPaiements(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newStore(t)

	client := testClient("cascade@example.ci", 5000, time.Now())
	require.NoError(t, st.Clients().CreateClient(ctx, client))

	now := time.Now().UTC()
	require.NoError(t, st.Paiements().CreatePaiement(ctx, domain.Paiement{
		ID:           string(idx.New()),
		ClientID:     client.ID,
		Montant:      100,
		DatePaiement: domain.DateOnly(now),
		CreatedAt:    now,
	}))

	require.NoError(t, st.Clients().DeleteClient(ctx, client.ID))

	paiements, err := st.Paiements().ListPaiementsByClient(ctx, client.ID)
	require.NoError(t, err)
	require.Empty(t, paiements)
}

func TestApplyPaiementClampsAtZero(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newStore(t)

	client := testClient("clamp@example.ci", 300, time.Now())
	require.NoError(t, st.Clients().CreateClient(ctx, client))

	require.NoError(t, st.Clients().ApplyPaiement(ctx, client.ID, 1000, time.Now().UTC()))

	got, err := st.Clients().GetClientByID(ctx, client.ID)
	require.NoError(t, err)
	require.Zero(t, got.MontantDu)
}

func TestDeleteEventsBefore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newStore(t)

	old := time.Now().UTC().AddDate(0, -6, 0)
	recent := time.Now().UTC()

	for _, at := range []time.Time{old, recent} {
		require.NoError(t, st.Connexions().AppendEvent(ctx, domain.ConnexionEvent{
			ID:         string(idx.New()),
			UserID:     "u1",
			Username:   "aminata",
			Action:     domain.ConnexionLogin,
			DateAction: at,
		}))
	}

	deleted, err := st.Connexions().DeleteEventsBefore(ctx, time.Now().UTC().AddDate(0, -3, 0))
	require.NoError(t, err)
	require.EqualValues(t, 1, deleted)

	count, err := st.Connexions().CountEvents(ctx, store.ConnexionFilter{})
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}
