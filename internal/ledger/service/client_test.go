package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/recouvro/recouvro/internal/ledger/domain"
	"github.com/recouvro/recouvro/internal/ledger/store"
	"github.com/stretchr/testify/require"
)

func TestAddClient(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("creates client and audit entry atomically", func(t *testing.T) {
		st := newTestStore(t)
		s := newClientService(st)

		client, err := s.AddClient(ctx, ClientInput{
			Nom:          "Awa Koné",
			Telephone:    "07 01 02 03 04",
			Email:        "awa@example.ci",
			MontantDu:    "1500,50",
			DateEcheance: "2026-09-15",
		}, "admin")
		require.NoError(t, err)
		require.NotEmpty(t, client.ID)
		require.Equal(t, "+2250701020304", client.Telephone)
		require.Equal(t, int64(150050), client.MontantDu)

		entries, err := st.Historique().ListEntries(ctx, store.HistoriqueFilter{})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		require.Equal(t, domain.ActionAjout, entries[0].Action)
		require.Equal(t, "Awa Koné", entries[0].ClientNom)
		require.Equal(t, "admin", entries[0].ModifiePar)
		require.NotNil(t, entries[0].ClientID)
		require.Equal(t, client.ID, *entries[0].ClientID)
	})

	t.Run("collects all field errors at once", func(t *testing.T) {
		st := newTestStore(t)
		s := newClientService(st)

		_, err := s.AddClient(ctx, ClientInput{
			Nom:          "A",
			Telephone:    "123",
			Email:        "pas-un-email",
			MontantDu:    "abc",
			DateEcheance: "15/09/2026",
		}, "admin")

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		for _, field := range []string{"nom", "telephone", "email", "montant_du", "date_echeance"} {
			require.Contains(t, verr.Fields, field)
		}

		// Nothing persisted, not even audit.
		count, err := st.Clients().CountClients(ctx, store.ClientFilter{})
		require.NoError(t, err)
		require.Zero(t, count)
		entries, err := st.Historique().CountEntries(ctx, store.HistoriqueFilter{})
		require.NoError(t, err)
		require.Zero(t, entries)
	})

	t.Run("rejects duplicate email case-insensitively", func(t *testing.T) {
		st := newTestStore(t)
		s := newClientService(st)

		mustAddClient(t, s, "Premier", "dup@example.ci", "1000", "2026-09-01")
		_, err := s.AddClient(ctx, ClientInput{
			Nom:          "Second",
			Telephone:    "0101020304",
			Email:        "DUP@example.ci",
			MontantDu:    "2000",
			DateEcheance: "2026-09-01",
		}, "admin")
		require.ErrorIs(t, err, ErrEmailAlreadyUsed)
	})

	t.Run("defaults actor to system", func(t *testing.T) {
		st := newTestStore(t)
		s := newClientService(st)

		_, err := s.AddClient(ctx, ClientInput{
			Nom:          "Sans Acteur",
			Telephone:    "0101020304",
			Email:        "sans@example.ci",
			MontantDu:    "500",
			DateEcheance: "2026-09-01",
		}, "  ")
		require.NoError(t, err)

		entries, err := st.Historique().ListEntries(ctx, store.HistoriqueFilter{})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		require.Equal(t, domain.SystemActor, entries[0].ModifiePar)
	})
}

func TestEditClient(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("updates fields and records changes", func(t *testing.T) {
		st := newTestStore(t)
		s := newClientService(st)

		created := mustAddClient(t, s, "Ancien Nom", "edit@example.ci", "1000.00", "2026-09-01")

		updated, err := s.EditClient(ctx, created.ID, ClientInput{
			Nom:          "Nouveau Nom",
			Telephone:    "0701020304",
			Email:        "edit@example.ci",
			MontantDu:    "750.00",
			DateEcheance: "2026-10-01",
		}, "admin")
		require.NoError(t, err)
		require.Equal(t, "Nouveau Nom", updated.Nom)
		require.Equal(t, int64(75000), updated.MontantDu)

		entries, err := st.Historique().ListEntries(ctx, store.HistoriqueFilter{Action: domain.ActionModification})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		require.Contains(t, entries[0].Details, "Nouveau Nom")
		require.Contains(t, entries[0].Details, "750.00")
	})

	t.Run("unknown client", func(t *testing.T) {
		st := newTestStore(t)
		s := newClientService(st)

		_, err := s.EditClient(ctx, "01K0000000000000000000TEST", ClientInput{
			Nom:          "Qui",
			Telephone:    "0701020304",
			Email:        "qui@example.ci",
			MontantDu:    "10",
			DateEcheance: "2026-09-01",
		}, "admin")
		require.ErrorIs(t, err, ErrClientNotFound)
	})
}

func TestAddPayment(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("decrements balance and records payment plus audit", func(t *testing.T) {
		st := newTestStore(t)
		s := newClientService(st)

		client := mustAddClient(t, s, "Payeur", "payeur@example.ci", "1000.00", "2026-09-01")

		updated, err := s.AddPayment(ctx, client.ID, PaymentInput{Montant: "400.00"}, "caisse")
		require.NoError(t, err)
		require.Equal(t, int64(60000), updated.MontantDu)

		paiements, err := st.Paiements().ListPaiementsByClient(ctx, client.ID)
		require.NoError(t, err)
		require.Len(t, paiements, 1)
		require.Equal(t, int64(40000), paiements[0].Montant)

		entries, err := st.Historique().ListEntries(ctx, store.HistoriqueFilter{Action: domain.ActionPaiement})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		require.Equal(t, "caisse", entries[0].ModifiePar)
		require.Contains(t, entries[0].Details, "400.00")
	})

	t.Run("overpayment clamps balance at zero", func(t *testing.T) {
		st := newTestStore(t)
		s := newClientService(st)

		client := mustAddClient(t, s, "Solde", "solde@example.ci", "250.00", "2026-09-01")

		updated, err := s.AddPayment(ctx, client.ID, PaymentInput{Montant: "1000.00"}, "caisse")
		require.NoError(t, err)
		require.Zero(t, updated.MontantDu)

		// The payment row keeps the full amount received.
		paiements, err := st.Paiements().ListPaiementsByClient(ctx, client.ID)
		require.NoError(t, err)
		require.Len(t, paiements, 1)
		require.Equal(t, int64(100000), paiements[0].Montant)
	})

	t.Run("rejects non-positive or malformed amounts", func(t *testing.T) {
		st := newTestStore(t)
		s := newClientService(st)

		client := mustAddClient(t, s, "Zéro", "zero@example.ci", "100", "2026-09-01")

		for _, montant := range []string{"0", "0.00", "abc", "-5"} {
			_, err := s.AddPayment(ctx, client.ID, PaymentInput{Montant: montant}, "caisse")
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr, "montant %q", montant)
		}

		paiements, err := st.Paiements().ListPaiementsByClient(ctx, client.ID)
		require.NoError(t, err)
		require.Empty(t, paiements)
	})

	t.Run("payment date defaults to today and keeps a backdated date", func(t *testing.T) {
		st := newTestStore(t)
		s := newClientService(st)

		client := mustAddClient(t, s, "Daté", "date@example.ci", "500.00", "2026-09-01")

		_, err := s.AddPayment(ctx, client.ID, PaymentInput{Montant: "100.00"}, "caisse")
		require.NoError(t, err)
		_, err = s.AddPayment(ctx, client.ID, PaymentInput{Montant: "50.00", DatePaiement: "2026-08-15"}, "caisse")
		require.NoError(t, err)

		paiements, err := st.Paiements().ListPaiementsByClient(ctx, client.ID)
		require.NoError(t, err)
		require.Len(t, paiements, 2)
		// Newest first: the backdated payment keeps the given date,
		// the dateless one is stamped with today.
		require.Equal(t, "2026-08-15", paiements[0].DatePaiement.Format(domain.DateFormat))
		require.Equal(t, "2026-08-31", paiements[1].DatePaiement.Format(domain.DateFormat))
	})

	t.Run("rejects future or malformed payment dates", func(t *testing.T) {
		st := newTestStore(t)
		s := newClientService(st)

		client := mustAddClient(t, s, "Futur", "futur@example.ci", "500.00", "2026-09-01")

		for _, date := range []string{"2026-09-01", "31/08/2026"} {
			_, err := s.AddPayment(ctx, client.ID, PaymentInput{Montant: "10", DatePaiement: date}, "caisse")
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr, "date %q", date)
			require.Contains(t, verr.Fields, "date_paiement")
		}

		paiements, err := st.Paiements().ListPaiementsByClient(ctx, client.ID)
		require.NoError(t, err)
		require.Empty(t, paiements)
	})

	t.Run("unknown client", func(t *testing.T) {
		st := newTestStore(t)
		s := newClientService(st)

		_, err := s.AddPayment(ctx, "01K0000000000000000000TEST", PaymentInput{Montant: "50"}, "caisse")
		require.ErrorIs(t, err, ErrClientNotFound)
	})
}

func TestConcurrentPayments(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := newTestStore(t)
	s := newClientService(st)
	ss := &StatsService{Store: st, Now: fixedNow}

	client := mustAddClient(t, s, "Concurrent", "concurrent@example.ci", "1000.00", "2026-09-01")

	// Ten simultaneous payments of 10.00 each plus one concurrent
	// add: none may be lost, and the totals must stay consistent.
	const workers = 10
	errs := make(chan error, workers+1)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.AddPayment(ctx, client.ID, PaymentInput{Montant: "10.00"}, "caisse")
			errs <- err
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := s.AddClient(ctx, ClientInput{
			Nom:          "Nouveau Venu",
			Telephone:    "0701020305",
			Email:        "nouveau@example.ci",
			MontantDu:    "250.00",
			DateEcheance: "2026-10-01",
		}, "testeur")
		errs <- err
	}()
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := st.Clients().GetClientByID(ctx, client.ID)
	require.NoError(t, err)
	require.Equal(t, int64(90000), got.MontantDu)

	paiements, err := st.Paiements().ListPaiementsByClient(ctx, client.ID)
	require.NoError(t, err)
	require.Len(t, paiements, workers)

	stats, err := ss.Snapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(90000+25000), stats.TotalDu)
	require.Equal(t, stats.MontantAvenir+stats.MontantRetard, stats.TotalDu)
}

func TestDeleteClient(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("removes client and payments but keeps history", func(t *testing.T) {
		st := newTestStore(t)
		s := newClientService(st)

		client := mustAddClient(t, s, "Éphémère", "ephemere@example.ci", "500.00", "2026-09-01")
		_, err := s.AddPayment(ctx, client.ID, PaymentInput{Montant: "100.00"}, "caisse")
		require.NoError(t, err)

		require.NoError(t, s.DeleteClient(ctx, client.ID, "admin"))

		_, err = st.Clients().GetClientByID(ctx, client.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		paiements, err := st.Paiements().ListPaiementsByClient(ctx, client.ID)
		require.NoError(t, err)
		require.Empty(t, paiements)

		total, err := st.Clients().TotalDu(ctx)
		require.NoError(t, err)
		require.Zero(t, total)

		// ajout + paiement + suppression survive the delete.
		entries, err := st.Historique().ListEntries(ctx, store.HistoriqueFilter{})
		require.NoError(t, err)
		require.Len(t, entries, 3)
		require.Equal(t, domain.ActionSuppression, entries[0].Action)
		require.Equal(t, "Éphémère", entries[0].ClientNom)
		require.Nil(t, entries[0].ClientID)
	})

	t.Run("unknown client", func(t *testing.T) {
		st := newTestStore(t)
		s := newClientService(st)
		err := s.DeleteClient(ctx, "01K0000000000000000000TEST", "admin")
		require.ErrorIs(t, err, ErrClientNotFound)
	})
}

func TestGetClient(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := newTestStore(t)
	s := newClientService(st)

	overdue := mustAddClient(t, s, "Retardataire", "retard@example.ci", "800.00", "2026-01-01")
	_, err := s.AddPayment(ctx, overdue.ID, PaymentInput{Montant: "300.00"}, "caisse")
	require.NoError(t, err)

	detail, err := s.GetClient(ctx, overdue.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatutRetard, detail.Statut)
	require.Equal(t, int64(50000), detail.Client.MontantDu)
	require.Len(t, detail.Paiements, 1)
}

func TestSendReminder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("dispatches and records relance", func(t *testing.T) {
		st := newTestStore(t)
		notifier := &recordingNotifier{}
		s := newClientService(st)
		s.Notifier = notifier

		client := mustAddClient(t, s, "Relancé", "relance@example.ci", "1200.00", "2026-01-01")

		require.NoError(t, s.SendReminder(ctx, client.ID, "", "admin"))

		require.Len(t, notifier.messages, 1)
		require.Contains(t, notifier.messages[0], "Relancé")
		require.Contains(t, notifier.messages[0], "1200.00")

		entries, err := st.Historique().ListEntries(ctx, store.HistoriqueFilter{Action: domain.ActionRelance})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		require.Contains(t, entries[0].Details, client.Telephone)
	})

	t.Run("dispatch failure keeps the audit entry", func(t *testing.T) {
		st := newTestStore(t)
		notifier := &recordingNotifier{fail: errors.New("broker down")}
		s := newClientService(st)
		s.Notifier = notifier

		client := mustAddClient(t, s, "Injoignable", "injoignable@example.ci", "100", "2026-01-01")

		err := s.SendReminder(ctx, client.ID, "rappel", "admin")
		require.ErrorIs(t, err, ErrDispatchFailed)

		entries, err := st.Historique().CountEntries(ctx, store.HistoriqueFilter{Action: domain.ActionRelance})
		require.NoError(t, err)
		require.EqualValues(t, 1, entries)
	})
}
