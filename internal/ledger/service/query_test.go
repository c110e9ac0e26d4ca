package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/recouvro/recouvro/internal/ledger/domain"
	"github.com/stretchr/testify/require"
)

func TestListClientsPagination(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := newTestStore(t)
	cs := newClientService(st)
	qs := &QueryService{Store: st, Now: fixedNow}

	for i := 1; i <= 12; i++ {
		mustAddClient(t, cs,
			fmt.Sprintf("Client %02d", i),
			fmt.Sprintf("client%02d@example.ci", i),
			"1000", "2026-12-01")
	}

	t.Run("pages cover the set in insertion order", func(t *testing.T) {
		page1, err := qs.ListClients(ctx, ClientQuery{Page: 1, PerPage: 5})
		require.NoError(t, err)
		require.EqualValues(t, 12, page1.Total)
		require.Equal(t, 3, page1.TotalPages)
		require.Len(t, page1.Clients, 5)
		require.Equal(t, "Client 01", page1.Clients[0].Client.Nom)
		require.Equal(t, 1, page1.Clients[0].Numero)
		require.Equal(t, 5, page1.Clients[4].Numero)

		page3, err := qs.ListClients(ctx, ClientQuery{Page: 3, PerPage: 5})
		require.NoError(t, err)
		require.Len(t, page3.Clients, 2)
		require.Equal(t, 11, page3.Clients[0].Numero)
		require.Equal(t, "Client 12", page3.Clients[1].Client.Nom)
	})

	t.Run("unknown page size falls back to default", func(t *testing.T) {
		page, err := qs.ListClients(ctx, ClientQuery{Page: 1, PerPage: 7})
		require.NoError(t, err)
		require.Equal(t, DefaultPerPage, page.PerPage)
		require.Len(t, page.Clients, 10)
		require.Equal(t, 2, page.TotalPages)
	})

	t.Run("page beyond the end is empty but well-formed", func(t *testing.T) {
		page, err := qs.ListClients(ctx, ClientQuery{Page: 99, PerPage: 10})
		require.NoError(t, err)
		require.Empty(t, page.Clients)
		require.EqualValues(t, 12, page.Total)
		require.Equal(t, 2, page.TotalPages)
	})

	t.Run("zero or negative page clamps to first", func(t *testing.T) {
		page, err := qs.ListClients(ctx, ClientQuery{Page: -3, PerPage: 5})
		require.NoError(t, err)
		require.Equal(t, 1, page.Page)
		require.Equal(t, 1, page.Clients[0].Numero)
	})
}

func TestListClientsFilters(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := newTestStore(t)
	cs := newClientService(st)
	qs := &QueryService{Store: st, Now: fixedNow}

	// testToday is 2026-08-31.
	mustAddClient(t, cs, "Kouassi Jean", "jean@example.ci", "500.00", "2026-01-15")   // retard
	mustAddClient(t, cs, "Kouassi Marie", "marie@example.ci", "1500.00", "2026-08-31") // due today: avenir
	mustAddClient(t, cs, "Diallo Omar", "omar@example.ci", "3000.00", "2026-12-01")   // avenir

	t.Run("status filter matches derived status", func(t *testing.T) {
		retard, err := qs.ListClients(ctx, ClientQuery{Statut: "retard"})
		require.NoError(t, err)
		require.Len(t, retard.Clients, 1)
		require.Equal(t, "Kouassi Jean", retard.Clients[0].Client.Nom)
		require.Equal(t, domain.StatutRetard, retard.Clients[0].Statut)

		avenir, err := qs.ListClients(ctx, ClientQuery{Statut: "avenir"})
		require.NoError(t, err)
		require.Len(t, avenir.Clients, 2)

		tous, err := qs.ListClients(ctx, ClientQuery{Statut: "tous"})
		require.NoError(t, err)
		require.EqualValues(t, 3, tous.Total)
	})

	t.Run("search is a case-insensitive substring on nom", func(t *testing.T) {
		page, err := qs.ListClients(ctx, ClientQuery{Search: "kouassi"})
		require.NoError(t, err)
		require.Len(t, page.Clients, 2)

		none, err := qs.ListClients(ctx, ClientQuery{Search: "zzz"})
		require.NoError(t, err)
		require.Empty(t, none.Clients)
		require.Zero(t, none.Total)
	})

	t.Run("amount bounds are inclusive", func(t *testing.T) {
		page, err := qs.ListClients(ctx, ClientQuery{MontantMin: "1500", MontantMax: "3000"})
		require.NoError(t, err)
		require.Len(t, page.Clients, 2)
	})

	t.Run("combined filters AND together", func(t *testing.T) {
		page, err := qs.ListClients(ctx, ClientQuery{Search: "kouassi", Statut: "avenir", MontantMin: "1000"})
		require.NoError(t, err)
		require.Len(t, page.Clients, 1)
		require.Equal(t, "Kouassi Marie", page.Clients[0].Client.Nom)
	})

	t.Run("bad filter values are rejected", func(t *testing.T) {
		_, err := qs.ListClients(ctx, ClientQuery{Statut: "inconnu"})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Contains(t, verr.Fields, "statut")

		_, err = qs.ListClients(ctx, ClientQuery{MontantMin: "abc"})
		require.ErrorAs(t, err, &verr)
		require.Contains(t, verr.Fields, "montant_min")
	})
}

func TestListHistorique(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := newTestStore(t)
	cs := newClientService(st)
	qs := &QueryService{Store: st, Now: fixedNow}

	client := mustAddClient(t, cs, "Suivi Complet", "suivi@example.ci", "2000.00", "2026-09-01")
	_, err := cs.AddPayment(ctx, client.ID, PaymentInput{Montant: "500.00"}, "caisse")
	require.NoError(t, err)
	require.NoError(t, cs.DeleteClient(ctx, client.ID, "admin"))

	t.Run("newest first with all actions", func(t *testing.T) {
		page, err := qs.ListHistorique(ctx, HistoriqueQuery{})
		require.NoError(t, err)
		require.EqualValues(t, 3, page.Total)
		require.Equal(t, domain.ActionSuppression, page.Entries[0].Action)
		require.Equal(t, domain.ActionAjout, page.Entries[2].Action)
	})

	t.Run("action filter", func(t *testing.T) {
		page, err := qs.ListHistorique(ctx, HistoriqueQuery{Action: "paiement"})
		require.NoError(t, err)
		require.Len(t, page.Entries, 1)
	})

	t.Run("client search matches the snapshot name", func(t *testing.T) {
		page, err := qs.ListHistorique(ctx, HistoriqueQuery{SearchClient: "suivi"})
		require.NoError(t, err)
		require.EqualValues(t, 3, page.Total)
	})

	t.Run("date range bounds are inclusive calendar days", func(t *testing.T) {
		page, err := qs.ListHistorique(ctx, HistoriqueQuery{DateDebut: "2026-08-31", DateFin: "2026-08-31"})
		require.NoError(t, err)
		require.EqualValues(t, 3, page.Total)

		empty, err := qs.ListHistorique(ctx, HistoriqueQuery{DateFin: "2026-08-30"})
		require.NoError(t, err)
		require.Zero(t, empty.Total)
	})

	t.Run("unknown action rejected", func(t *testing.T) {
		_, err := qs.ListHistorique(ctx, HistoriqueQuery{Action: "explosion"})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Contains(t, verr.Fields, "action")
	})
}

func TestListConnexions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := newTestStore(t)
	qs := &QueryService{Store: st, Now: fixedNow}
	us := &UserService{Store: st, Now: fixedNow}
	conn := &ConnexionService{Store: st, Now: fixedNow}

	_, err := us.CreateUser(ctx, "aminata", domain.RoleAdmin)
	require.NoError(t, err)
	_, err = conn.RecordConnexion(ctx, "aminata", domain.ConnexionLogin)
	require.NoError(t, err)
	_, err = conn.RecordConnexion(ctx, "aminata", domain.ConnexionLogout)
	require.NoError(t, err)

	t.Run("filters by action and user", func(t *testing.T) {
		page, err := qs.ListConnexions(ctx, ConnexionQuery{Action: "login"})
		require.NoError(t, err)
		require.Len(t, page.Events, 1)
		require.Equal(t, "aminata", page.Events[0].Username)

		all, err := qs.ListConnexions(ctx, ConnexionQuery{SearchUser: "amin"})
		require.NoError(t, err)
		require.EqualValues(t, 2, all.Total)
	})

	t.Run("unknown user cannot be recorded", func(t *testing.T) {
		_, err := conn.RecordConnexion(ctx, "fantome", domain.ConnexionLogin)
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}
